package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type fingerprintRequest struct {
	Fingerprint string `json:"fingerprint" binding:"required"`
}

// IdentifyDevice resolves a fingerprint to its bound employee so the kiosk
// can skip the employee selector.
func (h *Handler) IdentifyDevice(c *gin.Context) {
	var req fingerprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Fingerprint requerido."})
		return
	}

	employee, err := h.deviceService.Lookup(req.Fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Dispositivo no vinculado a un empleado."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "employee": employee})
}

type bindRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	Fingerprint string `json:"fingerprint" binding:"required"`
}

// BindDevice links the fingerprint to the chosen employee. Rebinding is
// allowed: a fingerprint known under another employee moves to this one.
func (h *Handler) BindDevice(c *gin.Context) {
	var req bindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Empleado y fingerprint requeridos."})
		return
	}

	binding, err := h.deviceService.Bind(req.EmployeeID, req.Fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "employee_id": binding.EmployeeID})
}

func (h *Handler) UnbindDevice(c *gin.Context) {
	var req fingerprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Fingerprint requerido."})
		return
	}

	deleted, err := h.deviceService.Unbind(req.Fingerprint)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// ListBindings is the admin audit view of fingerprint links.
func (h *Handler) ListBindings(c *gin.Context) {
	bindings, err := h.deviceService.Bindings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bindings)
}
