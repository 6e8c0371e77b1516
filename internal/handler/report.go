package handler

import (
	"net/http"
	"time"

	"control-asistencia/internal/models"

	"github.com/gin-gonic/gin"
)

// SummaryReport is the per-employee per-day duration feed, one row per
// (employee, date) with the declared project/activity when present.
func (h *Handler) SummaryReport(c *gin.Context) {
	rows, err := h.reportService.SummaryRows()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AttendanceReport is the raw record feed, newest first.
func (h *Handler) AttendanceReport(c *gin.Context) {
	records, err := h.reportService.AllRecords()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) ActivitiesReport(c *gin.Context) {
	activities, err := h.activityService.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// NotifySummary pushes a date's summary digest (?date=, default today) to
// the configured Telegram chat.
func (h *Handler) NotifySummary(c *gin.Context) {
	if h.notifier == nil || h.config.TelegramChatID == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Notificaciones no configuradas."})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = h.attendanceService.Today()
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Fecha inválida, use AAAA-MM-DD."})
		return
	}

	text, err := h.reportService.SummaryText(date)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.notifier.SendMessage(h.config.TelegramChatID, text); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": date})
}
