package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TodayActivity reports whether the employee already declared today's
// project/activity, and returns it when present.
func (h *Handler) TodayActivity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de empleado inválido."})
		return
	}

	activity, err := h.activityService.Today(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"declared": activity != nil,
		"activity": activity,
	})
}

type activityRequest struct {
	Project  string `json:"project" binding:"required"`
	Activity string `json:"activity" binding:"required"`
}

// RecordActivity stores today's declaration; a repeat submission the same
// day overwrites the earlier one.
func (h *Handler) RecordActivity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de empleado inválido."})
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Debe completar Proyecto y Actividad."})
		return
	}

	activity, err := h.activityService.RecordToday(uint(id), req.Project, req.Activity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Actividad registrada correctamente.",
		"activity": activity,
	})
}
