package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/middleware"
	"github.com/employee-management-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router настраивает маршруты API
type Router struct {
	logger         *slog.Logger
	tokens         *auth.TokenIssuer
	allowedOrigins []string

	authHandler         *AuthHandler
	deptHandler         *DepartmentHandler
	empHandler          *EmployeeHandler
	taskHandler         *TaskHandler
	attHandler          *AttendanceHandler
	leaveHandler        *LeaveHandler
	payrollHandler      *PayrollHandler
	docHandler          *DocumentHandler
	notificationHandler *NotificationHandler
}

// NewRouter создаёт новый роутер
func NewRouter(services *service.Services, tokens *auth.TokenIssuer, allowedOrigins []string, logger *slog.Logger) *Router {
	return &Router{
		logger:              logger,
		tokens:              tokens,
		allowedOrigins:      allowedOrigins,
		authHandler:         NewAuthHandler(services.Auth, services.Users, logger),
		deptHandler:         NewDepartmentHandler(services.Departments, logger),
		empHandler:          NewEmployeeHandler(services.Employees, logger),
		taskHandler:         NewTaskHandler(services.Tasks, logger),
		attHandler:          NewAttendanceHandler(services.Attendance, services.Corrections, logger),
		leaveHandler:        NewLeaveHandler(services.Leaves, logger),
		payrollHandler:      NewPayrollHandler(services.Payrolls, logger),
		docHandler:          NewDocumentHandler(services.Documents, logger),
		notificationHandler: NewNotificationHandler(services.Notifications, logger),
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.ContentType)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", rt.authHandler.Register)
		r.Post("/login", rt.authHandler.Login)
		r.Post("/reset-password/request", rt.authHandler.RequestPasswordReset)
		r.Post("/reset-password/confirm", rt.authHandler.ConfirmPasswordReset)
		r.With(middleware.Authenticate(rt.tokens)).Get("/me", rt.authHandler.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.tokens))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", rt.authHandler.ListUsers)
			r.Get("/{id}", rt.authHandler.GetUser)
			r.Patch("/{id}", rt.authHandler.UpdateUser)
			r.Delete("/{id}", rt.authHandler.DeleteUser)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", rt.deptHandler.List)
			r.Post("/", rt.deptHandler.Create)
			r.Get("/{id}", rt.deptHandler.GetByID)
			r.Patch("/{id}", rt.deptHandler.Update)
			r.Delete("/{id}", rt.deptHandler.Delete)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", rt.empHandler.List)
			r.Post("/", rt.empHandler.Create)
			r.Get("/export", rt.empHandler.Export)
			r.Get("/{id}", rt.empHandler.GetByID)
			r.Patch("/{id}", rt.empHandler.Update)
			r.Delete("/{id}", rt.empHandler.Delete)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.List)
			r.Post("/", rt.taskHandler.Create)
			r.Get("/{id}", rt.taskHandler.GetByID)
			r.Patch("/{id}", rt.taskHandler.Update)
			r.Post("/{id}/complete", rt.taskHandler.Complete)
			r.Post("/{id}/review", rt.taskHandler.Review)
			r.Delete("/{id}", rt.taskHandler.Delete)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", rt.attHandler.List)
			r.Post("/", rt.attHandler.Create)
			r.Post("/bulk-upload", rt.attHandler.BulkUpload)
			r.Get("/status/{employee_id}", rt.attHandler.Status)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", rt.attHandler.Summary)
				r.Get("/trend", rt.attHandler.Trend)
				r.Get("/kpi", rt.attHandler.KPI)
				r.Get("/export", rt.attHandler.Export)
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Get("/", rt.attHandler.ListCorrections)
				r.Post("/", rt.attHandler.SubmitCorrection)
				r.Get("/{id}", rt.attHandler.GetCorrection)
				r.Patch("/{id}", rt.attHandler.DecideCorrection)
			})

			r.Get("/{id}", rt.attHandler.GetByID)
			r.Patch("/{id}", rt.attHandler.Update)
			r.Delete("/{id}", rt.attHandler.Delete)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/", rt.leaveHandler.List)
			r.Post("/", rt.leaveHandler.Apply)
			r.Get("/{id}", rt.leaveHandler.GetByID)
			r.Patch("/{id}", rt.leaveHandler.Update)
			r.Delete("/{id}", rt.leaveHandler.Delete)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", rt.payrollHandler.List)
			r.Post("/", rt.payrollHandler.Create)
			r.Post("/process/{employee_id}", rt.payrollHandler.Process)
			r.Get("/{id}", rt.payrollHandler.GetByID)
			r.Patch("/{id}", rt.payrollHandler.Update)
			r.Delete("/{id}", rt.payrollHandler.Delete)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", rt.docHandler.List)
			r.Post("/", rt.docHandler.Upload)
			r.Get("/expiry/alerts", rt.docHandler.ExpiryAlerts)
			r.Get("/{id}", rt.docHandler.GetByID)
			r.Get("/{id}/download", rt.docHandler.Download)
			r.Delete("/{id}", rt.docHandler.Delete)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", rt.notificationHandler.ListMine)
			r.Get("/user/{user_id}", rt.notificationHandler.ListForUser)
		})
	})

	return r
}
