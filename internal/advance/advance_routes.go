package advance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	advances := r.Group("/salary-advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.GET("", handler.GetAll)
		advances.GET("/:id", handler.GetById)
		advances.GET("/employee/:employeeId", handler.GetByEmployee)
		advances.POST("", handler.Create)
		advances.PATCH("/:id/review", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Review)
	}
}
