package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"control-asistencia/internal/config"
	"control-asistencia/internal/models"
	"control-asistencia/internal/repository"
	"control-asistencia/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	employee *models.Employee
	types    map[string]uint
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		t.Fatalf("employee repo: %v", err)
	}
	typeRepo, err := repository.NewGormAttendanceTypeRepository(db)
	if err != nil {
		t.Fatalf("type repo: %v", err)
	}
	recordRepo, err := repository.NewGormAttendanceRecordRepository(db)
	if err != nil {
		t.Fatalf("record repo: %v", err)
	}
	bindingRepo, err := repository.NewGormDeviceBindingRepository(db)
	if err != nil {
		t.Fatalf("binding repo: %v", err)
	}
	activityRepo, err := repository.NewGormDailyActivityRepository(db)
	if err != nil {
		t.Fatalf("activity repo: %v", err)
	}
	adminRepo, err := repository.NewGormAdminUserRepository(db)
	if err != nil {
		t.Fatalf("admin repo: %v", err)
	}

	clk := &fixedClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	cfg := &config.AppConfig{AppURL: "http://localhost:8080", JWTSecret: "test-secret"}

	devices := service.NewDeviceService(bindingRepo, employeeRepo)
	attendance := service.NewAttendanceService(recordRepo, employeeRepo, typeRepo, devices, clk)
	activities := service.NewActivityService(activityRepo, employeeRepo, clk)
	employees := service.NewEmployeeService(employeeRepo, cfg.AppURL)
	reports := service.NewReportService(recordRepo, activityRepo)
	auth := service.NewAuthService(adminRepo, cfg.JWTSecret, clk)
	if err := auth.SeedAdmin("admin", "s3cret"); err != nil {
		t.Fatalf("SeedAdmin failed: %v", err)
	}

	h := NewHandler(attendance, devices, activities, employees, reports, auth, nil, cfg)

	employee := &models.Employee{FirstName: "Iris", LastName: "Oblitas", DNI: 10000010}
	if err := employeeRepo.Create(employee); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	typeRows, err := typeRepo.GetAll()
	if err != nil {
		t.Fatalf("failed to list types: %v", err)
	}
	types := make(map[string]uint, len(typeRows))
	for _, row := range typeRows {
		types[row.Name] = row.ID
	}

	return &testServer{
		router:   h.Router(),
		db:       db,
		employee: employee,
		types:    types,
	}
}

func (s *testServer) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func TestRegisterEndpoint(t *testing.T) {
	s := setupTestServer(t)

	w := s.postJSON(t, "/api/attendance", gin.H{
		"employee_id": s.employee.ID,
		"type_id":     s.types[models.TypeClockIn],
		"fingerprint": "kiosk-1",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		NeedsActivity bool   `json:"needs_activity"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success {
		t.Error("Expected success")
	}
	if resp.Message != "Entrada registrada correctamente." {
		t.Errorf("Unexpected message %q", resp.Message)
	}
	// First clock-in of the day routes to activity capture.
	if !resp.NeedsActivity {
		t.Error("Expected needs_activity after first clock-in")
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	s := setupTestServer(t)

	body := gin.H{"employee_id": s.employee.ID, "type_id": s.types[models.TypeClockIn]}
	if w := s.postJSON(t, "/api/attendance", body); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", w.Code)
	}

	w := s.postJSON(t, "/api/attendance", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Entrada") {
		t.Errorf("Expected message naming the type, got %s", w.Body.String())
	}
}

func TestRegisterEndpointSkipsActivityWhenDeclared(t *testing.T) {
	s := setupTestServer(t)

	w := s.postJSON(t, fmt.Sprintf("/api/employees/%d/activity", s.employee.ID), gin.H{
		"project":  "Proyecto Norte",
		"activity": "Cableado",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("activity: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = s.postJSON(t, "/api/attendance", gin.H{
		"employee_id": s.employee.ID,
		"type_id":     s.types[models.TypeClockIn],
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	var resp struct {
		NeedsActivity bool `json:"needs_activity"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NeedsActivity {
		t.Error("Expected no activity capture once declared")
	}
}

func TestDeviceEndpoints(t *testing.T) {
	s := setupTestServer(t)

	// Unknown device: 404 from identify.
	w := s.postJSON(t, "/api/devices/identify", gin.H{"fingerprint": "fp-1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown device, got %d", w.Code)
	}

	w = s.postJSON(t, "/api/devices/bind", gin.H{"employee_id": s.employee.ID, "fingerprint": "fp-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("bind: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = s.postJSON(t, "/api/devices/identify", gin.H{"fingerprint": "fp-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("identify: expected 200, got %d", w.Code)
	}
	var resp struct {
		Employee models.Employee `json:"employee"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Employee.ID != s.employee.ID {
		t.Errorf("Expected employee %d, got %d", s.employee.ID, resp.Employee.ID)
	}

	w = s.postJSON(t, "/api/devices/unbind", gin.H{"fingerprint": "fp-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("unbind: expected 200, got %d", w.Code)
	}
	var unbind struct {
		Deleted int64 `json:"deleted"`
	}
	json.Unmarshal(w.Body.Bytes(), &unbind)
	if unbind.Deleted != 1 {
		t.Errorf("Expected 1 deleted, got %d", unbind.Deleted)
	}
}

func TestReportEndpointsRequireToken(t *testing.T) {
	s := setupTestServer(t)

	req, _ := http.NewRequest("GET", "/api/reports/summary", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}

	login := s.postJSON(t, "/api/auth/login", gin.H{"username": "admin", "password": "s3cret"})
	if login.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", login.Code)
	}
	var creds struct {
		Token string `json:"token"`
	}
	json.Unmarshal(login.Body.Bytes(), &creds)

	req, _ = http.NewRequest("GET", "/api/reports/summary", nil)
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := setupTestServer(t)

	w := s.postJSON(t, "/api/auth/login", gin.H{"username": "admin", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}
