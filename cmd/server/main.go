package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"control-asistencia/internal/clock"
	"control-asistencia/internal/config"
	"control-asistencia/internal/handler"
	"control-asistencia/internal/repository"
	"control-asistencia/internal/service"
	"control-asistencia/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetAppConfig()
	logrus.Info("Config initialized")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		// Constraint violations must surface as gorm.ErrDuplicatedKey so
		// the repositories can translate them into business outcomes.
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	localClock, err := clock.NewLocal(cfg.Timezone)
	if err != nil {
		logrus.Fatal("Failed to load timezone:", err)
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	typeRepo, err := repository.NewGormAttendanceTypeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance type repository")
	}

	recordRepo, err := repository.NewGormAttendanceRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance record repository")
	}

	bindingRepo, err := repository.NewGormDeviceBindingRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create device binding repository")
	}

	activityRepo, err := repository.NewGormDailyActivityRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create daily activity repository")
	}

	adminRepo, err := repository.NewGormAdminUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create admin user repository")
	}

	deviceService := service.NewDeviceService(bindingRepo, employeeRepo)
	attendanceService := service.NewAttendanceService(recordRepo, employeeRepo, typeRepo, deviceService, localClock)
	activityService := service.NewActivityService(activityRepo, employeeRepo, localClock)
	employeeService := service.NewEmployeeService(employeeRepo, cfg.AppURL)
	reportService := service.NewReportService(recordRepo, activityRepo)
	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, localClock)

	if err := authService.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logrus.WithError(err).Fatal("Failed to seed admin user")
	}

	var notifier *telegram.Client
	if cfg.TelegramToken != "" {
		notifier, err = telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			logrus.Infof("Warning: Failed to create Telegram client: %v", err)
		} else {
			logrus.Infof("Telegram notifier ready for chat %d", cfg.TelegramChatID)
		}
	}

	h := handler.NewHandler(
		attendanceService,
		deviceService,
		activityService,
		employeeService,
		reportService,
		authService,
		notifier,
		cfg,
	)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: h.Router(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server listening on %s", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
