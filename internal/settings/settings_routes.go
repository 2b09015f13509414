package settings

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/payroll-settings")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", handler.Get)
		group.PUT("", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Upsert)
	}
}
