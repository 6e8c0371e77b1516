package handler

import (
	"errors"
	"net/http"

	"control-asistencia/internal/config"
	"control-asistencia/internal/service"
	"control-asistencia/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	attendanceService *service.AttendanceService
	deviceService     *service.DeviceService
	activityService   *service.ActivityService
	employeeService   *service.EmployeeService
	reportService     *service.ReportService
	authService       *service.AuthService
	notifier          *telegram.Client
	config            *config.AppConfig
}

func NewHandler(
	attendanceService *service.AttendanceService,
	deviceService *service.DeviceService,
	activityService *service.ActivityService,
	employeeService *service.EmployeeService,
	reportService *service.ReportService,
	authService *service.AuthService,
	notifier *telegram.Client,
	cfg *config.AppConfig,
) *Handler {
	return &Handler{
		attendanceService: attendanceService,
		deviceService:     deviceService,
		activityService:   activityService,
		employeeService:   employeeService,
		reportService:     reportService,
		authService:       authService,
		notifier:          notifier,
		config:            cfg,
	}
}

// Router wires the kiosk surface (anonymous) and the admin surface
// (bearer token).
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/attendance", h.RegisterAttendance)
		api.GET("/attendance/types", h.ListTypes)

		api.POST("/employees/qr", h.LookupByQRCode)
		api.GET("/employees", h.ListEmployees)
		api.GET("/employees/:id/records", h.EmployeeRecords)
		api.GET("/employees/:id/activity", h.TodayActivity)
		api.POST("/employees/:id/activity", h.RecordActivity)

		api.POST("/devices/identify", h.IdentifyDevice)
		api.POST("/devices/bind", h.BindDevice)
		api.POST("/devices/unbind", h.UnbindDevice)

		api.POST("/auth/login", h.Login)
	}

	admin := api.Group("", h.RequireAdmin())
	{
		admin.GET("/devices", h.ListBindings)
		admin.GET("/reports/summary", h.SummaryReport)
		admin.GET("/reports/attendance", h.AttendanceReport)
		admin.GET("/reports/activities", h.ActivitiesReport)
		admin.POST("/reports/notify", h.NotifySummary)
		admin.POST("/admin/employees/import", h.ImportEmployees)
		admin.POST("/admin/employees/:id/qrcode", h.EnsureQRCode)
	}

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError turns a service error into a JSON response. Business
// outcomes carry their kind and message; internal faults are logged and
// answered with a generic body so nothing below the business layer leaks.
func respondError(c *gin.Context, err error) {
	status := service.HTTPStatus(err)

	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(status, gin.H{
			"success": false,
			"error":   "Error inesperado. Intente nuevamente.",
		})
		return
	}

	var domainErr *service.DomainError
	errors.As(err, &domainErr)
	c.JSON(status, gin.H{
		"success": false,
		"kind":    domainErr.Kind,
		"error":   domainErr.Message,
	})
}
