package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/middleware"
	"github.com/horizon-academy/academy-gateway/internal/models"
)

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.SessionFrom(c)
}
