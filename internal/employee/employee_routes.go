package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)
		employees.POST("", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.Delete)
	}
}
