package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"control-asistencia/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type registerRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	TypeID      uint   `json:"type_id" binding:"required"`
	Description string `json:"description"`
	Fingerprint string `json:"fingerprint"`
}

// RegisterAttendance records one attendance event. After a successful
// "Entrada" the response asks the kiosk to collect the day's activity if it
// was not declared yet; an error while deciding that fails open and the
// kiosk goes straight to the confirmation screen.
func (h *Handler) RegisterAttendance(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Debe indicar empleado y tipo de asistencia."})
		return
	}

	record, err := h.attendanceService.Register(req.EmployeeID, req.TypeID, req.Description, req.Fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}

	needsActivity := false
	if record.Type.Name == models.TypeClockIn {
		has, err := h.activityService.HasToday(record.EmployeeID)
		if err != nil {
			logrus.WithError(err).Warn("Could not check daily activity, skipping capture")
		} else {
			needsActivity = !has
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        fmt.Sprintf("%s registrada correctamente.", record.Type.Name),
		"record":         record,
		"needs_activity": needsActivity,
	})
}

func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.attendanceService.Types()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// EmployeeRecords returns one employee's events for today or for ?date=.
func (h *Handler) EmployeeRecords(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de empleado inválido."})
		return
	}

	records, err := h.attendanceService.RecordsFor(uint(id), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
