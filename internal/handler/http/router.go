package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/opticalspaces/attendance-backend-go/internal/config"
	"github.com/opticalspaces/attendance-backend-go/internal/handler/http/middleware"
	"github.com/opticalspaces/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	companyHandler CompanyHandler,
	reportHandler ReportHandler,
	cronHandler CronHandler,
) *chi.Mux {
	r := chi.NewRouter()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Secret"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		r.Route("/cron", func(r chi.Router) {
			r.Use(middleware.CronSecret(cfg.Cron.Secret))
			r.Post("/auto-signout", cronHandler.TriggerAutoSignOut)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetStatus)
				r.Post("/sign-in", attendanceHandler.SignIn)
				r.Post("/sign-out", attendanceHandler.SignOut)

				r.Route("/lunch", func(r chi.Router) {
					r.Post("/", attendanceHandler.StartLunchBreak)
					r.Patch("/", attendanceHandler.EndLunchBreak)
				})

				r.Route("/half-day", func(r chi.Router) {
					r.Post("/", attendanceHandler.RequestHalfDay)
					r.Patch("/", attendanceHandler.RequestHalfDay)
				})

				r.Patch("/overtime", attendanceHandler.SubmitOvertime)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", leaveHandler.RequestLeave)
				r.Get("/balance", leaveHandler.GetBalance)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", reportHandler.AttendanceRange)
			})

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/schedule", companyHandler.GetSchedule)
				r.Put("/schedule", companyHandler.UpdateSchedule)
			})
		})
	})

	return r
}
