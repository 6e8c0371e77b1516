package handler

import (
	"net/http"
	"strings"

	"control-asistencia/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Usuario y contraseña requeridos."})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		// Bad credentials answer 401, not the validation default.
		if service.IsKind(err, service.KindValidation) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Credenciales inválidas."})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// RequireAdmin guards the reporting surface with a bearer token.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token requerido."})
			return
		}

		username, err := h.authService.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token inválido o expirado."})
			return
		}

		c.Set("admin", username)
		c.Next()
	}
}
