package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, h.Doctors.ListDoctors())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
