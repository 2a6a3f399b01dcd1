package main

import (
	"fmt"
	"net/http"

	"github.com/opticalspaces/attendance-backend-go/internal/config"
	appHTTP "github.com/opticalspaces/attendance-backend-go/internal/handler/http"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/cron"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/database"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
	"github.com/opticalspaces/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/opticalspaces/attendance-backend-go/internal/service/attendance"
	authService "github.com/opticalspaces/attendance-backend-go/internal/service/auth"
	companyService "github.com/opticalspaces/attendance-backend-go/internal/service/company"
	leaveService "github.com/opticalspaces/attendance-backend-go/internal/service/leave"
	reportService "github.com/opticalspaces/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	quotaSvc := leaveService.NewQuotaService(leaveQuotaRepo, employeeRepo, companyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, companyRepo, quotaSvc)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	companySvc := companyService.NewCompanyService(companyRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, companyRepo)

	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, companyRepo)
	scheduler := cron.NewScheduler()
	attendanceJobs.RegisterJobs(scheduler, cfg.Cron.AutoSignOutInterval)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(attendanceSvc, quotaSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	cronHandler := appHTTP.NewCronHandler(attendanceJobs)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		companyHandler,
		reportHandler,
		cronHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
