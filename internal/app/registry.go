package app

import (
	"database/sql"

	"go-payroll/internal/advance"
	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/loan"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	advanceRepo := advance.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)

	// --- Services ---
	advanceService := advance.NewService(db, advanceRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewService(db, employeeRepo)
	loanService := loan.NewService(db, loanRepo)

	var settingsService settings.Service
	if rdb != nil {
		settingsService = settings.NewServiceWithCache(settingsRepo, rdb)
	} else {
		settingsService = settings.NewService(settingsRepo)
	}

	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		settingsService,
		attendanceRepo,
		loanRepo,
		advanceRepo,
		counterRepo,
		outboxRepo,
	)

	// --- Handlers ---
	advanceHandler := advance.NewHandler(advanceService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	loanHandler := loan.NewHandler(loanService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		advance.RegisterRoutes(api, advanceHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		employee.RegisterRoutes(api, employeeHandler)
		loan.RegisterRoutes(api, loanHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		settings.RegisterRoutes(api, settingsHandler)
	}

	return nil
}
