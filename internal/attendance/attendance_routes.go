package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("/me", handler.GetMine)
		attendances.POST("/clock-in", handler.ClockIn)
		attendances.POST("/clock-out", handler.ClockOut)
		attendances.GET("/overtime-summary", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.OvertimeSummary)
		attendances.PUT("/:id/overtime", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.RecordOvertime)
	}
}
