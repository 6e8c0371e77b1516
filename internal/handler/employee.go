package handler

import (
	"net/http"
	"strconv"

	"control-asistencia/internal/service"

	"github.com/gin-gonic/gin"
)

type qrLookupRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

// LookupByQRCode resolves a scanned per-employee code.
func (h *Handler) LookupByQRCode(c *gin.Context) {
	var req qrLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Código QR requerido."})
		return
	}

	employee, err := h.employeeService.GetByQRCode(req.QRCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "employee": employee})
}

// ListEmployees backs the kiosk selector shown when a device is not bound
// yet, ordered by last name.
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

type importRequest struct {
	Employees []service.ImportEntry `json:"employees" binding:"required"`
}

// ImportEmployees bulk-loads the directory, upserting on DNI.
func (h *Handler) ImportEmployees(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Lista de empleados requerida."})
		return
	}

	count, err := h.employeeService.Import(req.Employees)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "imported": count})
}

// EnsureQRCode generates the employee's code on first request and returns
// the payload URL the printable image should encode.
func (h *Handler) EnsureQRCode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de empleado inválido."})
		return
	}

	employee, err := h.employeeService.EnsureQRCode(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"employee": employee,
		"qr_url":   h.employeeService.QRPayloadURL(employee),
	})
}
