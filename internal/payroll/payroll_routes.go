package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/:id", handler.GetById)
		payrolls.GET("/:id/payslip", handler.DownloadPayslip)
		payrolls.POST("/compute", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Compute)
		if redisClient != nil {
			payrolls.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RoleMiddleware("ADMIN", "HR_ADMIN"),
				handler.Record,
			)
		} else {
			payrolls.POST("", middleware.RoleMiddleware("ADMIN", "HR_ADMIN"), handler.Record)
		}
		payrolls.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.Delete)
	}
}
