package loan

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	loans := r.Group("/loans")
	loans.Use(middleware.AuthMiddleware())
	{
		loans.GET("", handler.GetAll)
		loans.GET("/:id", handler.GetById)
		loans.GET("/employee/:employeeId", handler.GetByEmployee)
		loans.POST("", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Create)
		loans.PATCH("/:id/status", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.UpdateStatus)
	}
}
