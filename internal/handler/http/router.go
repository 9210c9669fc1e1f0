package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/middleware"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Attendance   AttendanceHandler
	Schedule     ScheduleHandler
	Commission   CommissionHandler
	Claim        ClaimHandler
	Leave        LeaveHandler
	Advance      AdvanceHandler
	Resignation  ResignationHandler
	Notification NotificationHandler
	Admin        AdminHandler
}

func NewRouter(ja *jwtauth.JWTAuth, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-astaka"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(ja))

			r.Route("/attendance", func(r chi.Router) {
				// Self-service clocking
				r.Route("/employee", func(r chi.Router) {
					r.Post("/clock", h.Attendance.Clock)
					r.Post("/today", h.Attendance.Today)
					r.Post("/history", h.Attendance.History)
				})

				// Review and approval
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Get("/", h.Attendance.List)
					r.Post("/", h.Attendance.AdminUpsert)
					r.Get("/summary", h.Attendance.Summary)
					r.Get("/needs-review", h.Attendance.NeedsReview)
					r.Post("/bulk-approve-ot", h.Attendance.BulkApproveOT)
					r.Post("/recalculate", h.Attendance.Recalculate)

					r.Route("/{id}", func(r chi.Router) {
						r.Put("/action/{action}", h.Attendance.AdminSetAction)
						r.Post("/approve", h.Attendance.Approve)
						r.Post("/reject", h.Attendance.Reject)
						r.Post("/approve-with-schedule", h.Attendance.ApproveWithSchedule)
						r.Post("/approve-without-schedule", h.Attendance.ApproveWithoutSchedule)
						r.Post("/approve-ot", h.Attendance.ApproveOT)
						r.Post("/reject-ot", h.Attendance.RejectOT)
						r.Post("/mark-reviewed", h.Attendance.MarkReviewed)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAbove)
					r.Get("/ot-for-payroll/{year}/{month}", h.Attendance.OTForPayroll)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/trigger-auto-clockout", h.Attendance.TriggerAutoClockOut)
					r.Get("/auto-clockout-stats", h.Attendance.AutoClockOutStats)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.List)
				r.Get("/calendar", h.Schedule.Calendar)
				r.Get("/employees/{id}/month/{year}/{month}", h.Schedule.MonthForEmployee)
				r.Get("/permissions", h.Schedule.Permissions)

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", h.Schedule.ListTemplates)

					r.Group(func(r chi.Router) {
						r.Use(middleware.ManagerOrAbove)
						r.Post("/", h.Schedule.CreateTemplate)
						r.Put("/{id}", h.Schedule.UpdateTemplate)
						r.Delete("/{id}", h.Schedule.DeleteTemplate)
					})
				})

				r.Route("/roster", func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Get("/weekly", h.Schedule.WeeklyRoster)
					r.Post("/assign", h.Schedule.Assign)
					r.Post("/bulk-assign", h.Schedule.BulkAssign)
					r.Delete("/clear", h.Schedule.ClearDay)

					r.Route("/department", func(r chi.Router) {
						r.Get("/weekly", h.Schedule.WeeklyRoster)
						r.Get("/monthly", h.Schedule.Calendar)
						r.Post("/assign", h.Schedule.Assign)
						r.Post("/bulk-assign", h.Schedule.BulkAssign)
						r.Post("/copy-month", h.Schedule.CopyMonth)
					})
				})

				r.Route("/extra-shift-requests", func(r chi.Router) {
					r.Get("/", h.Schedule.ListExtraShifts)
					r.Post("/", h.Schedule.CreateExtraShift)

					r.Group(func(r chi.Router) {
						r.Use(middleware.SupervisorOrAbove)
						r.Post("/{id}/approve", h.Schedule.ApproveExtraShift)
						r.Post("/{id}/reject", h.Schedule.RejectExtraShift)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Post("/", h.Schedule.Create)
					r.Post("/bulk", h.Schedule.BulkCreate)
					r.Put("/{id}", h.Schedule.Update)
					r.Delete("/{id}", h.Schedule.Delete)
				})
			})

			r.Route("/commission", func(r chi.Router) {
				r.Use(middleware.SupervisorOrAbove)
				r.Get("/outlets", h.Commission.Outlets)
				r.Get("/payouts/employee/{employeeId}", h.Commission.EmployeePayouts)

				r.Route("/sales", func(r chi.Router) {
					r.Get("/", h.Commission.ListSales)
					r.Post("/", h.Commission.UpsertSales)
					r.Get("/{id}", h.Commission.GetSales)
					r.Delete("/{id}", h.Commission.DeleteSales)
					r.Get("/{id}/payouts", h.Commission.Payouts)
					r.Post("/{id}/calculate", h.Commission.Calculate)

					r.Group(func(r chi.Router) {
						r.Use(middleware.ManagerOrAbove)
						r.Post("/{id}/finalize", h.Commission.Finalize)
						r.Post("/{id}/revert", h.Commission.Revert)
					})
				})
			})

			r.Route("/claims", func(r chi.Router) {
				r.Get("/", h.Claim.List)
				r.Post("/", h.Claim.Create)
				r.Get("/categories", h.Claim.Categories)
				r.Get("/allowed-types/{employeeId}", h.Claim.AllowedTypes)
				r.Put("/{id}", h.Claim.Update)

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Get("/pending-count", h.Claim.PendingCount)
					r.Get("/summary", h.Claim.Summary)
					r.Post("/bulk-approve", h.Claim.BulkApprove)
					r.Post("/{id}/approve", h.Claim.Approve)
					r.Post("/{id}/reject", h.Claim.Reject)
					r.Post("/{id}/revert", h.Claim.Revert)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAbove)
					r.Get("/for-payroll", h.Claim.ForPayroll)
					r.Post("/link-to-payroll", h.Claim.LinkToPayroll)
				})
			})

			r.Route("/resignations", func(r chi.Router) {
				r.Get("/{id}", h.Resignation.Get)
				r.Post("/", h.Resignation.Create)
				r.Put("/{id}", h.Resignation.Update)
				r.Post("/{id}/withdraw", h.Resignation.Withdraw)
				r.Get("/{id}/clearance", h.Resignation.Clearance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Get("/", h.Resignation.List)
					r.Post("/{id}/clearance", h.Resignation.ClearItem)
					r.Post("/{id}/clearance/{itemId}", h.Resignation.ClearItem)
					r.Post("/{id}/clearance/generate", h.Resignation.RegenerateClearance)
					r.Get("/{id}/check-leaves", h.Resignation.CheckLeaves)
					r.Get("/{id}/leave-entitlement", h.Resignation.LeaveEntitlement)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAbove)
					r.Post("/{id}/approve", h.Resignation.Approve)
					r.Post("/{id}/reject", h.Resignation.Reject)
					r.Post("/{id}/cancel", h.Resignation.Cancel)
					r.Post("/{id}/waive-notice", h.Resignation.WaiveNotice)
					r.Get("/{id}/settlement", h.Resignation.GetSettlement)
					r.Post("/{id}/settlement", h.Resignation.CalculateSettlement)
					r.Post("/{id}/process", h.Resignation.Process)
					r.Post("/{id}/cleanup-leaves", h.Resignation.CleanupLeaves)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Get("/types", h.Leave.Types)
				r.Get("/balances/{employeeId}", h.Leave.Balances)
				r.Get("/{id}", h.Leave.Get)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOrAbove)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", h.Advance.List)
				r.Post("/", h.Advance.Create)
				r.Get("/{id}", h.Advance.Get)
				r.Post("/{id}/cancel", h.Advance.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOrAbove)
					r.Post("/{id}/approve", h.Advance.Approve)
					r.Post("/{id}/deduct", h.Advance.Deduct)
					r.Get("/{id}/deductions", h.Advance.Deductions)
					r.Get("/outstanding/{employeeId}", h.Advance.Outstanding)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/{id}/read", h.Notification.MarkRead)
				r.Post("/read-all", h.Notification.MarkAllRead)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/retention", func(r chi.Router) {
					r.Get("/status", h.Admin.RetentionStatus)
					r.Get("/pending", h.Admin.RetentionPending)
					r.Get("/logs", h.Admin.RetentionLogs)
					r.Post("/cleanup", h.Admin.RetentionCleanup)
				})

				r.Route("/aaalive", func(r chi.Router) {
					r.Get("/test", h.Admin.DriverSyncTest)
					r.Get("/drivers", h.Admin.DriverSyncDrivers)
					r.Get("/shifts", h.Admin.DriverSyncShifts)
					r.Post("/sync", h.Admin.DriverSyncRun)
				})

				r.Route("/jobs", func(r chi.Router) {
					r.Post("/resignation-status", h.Admin.TriggerResignationUpdate)
					r.Post("/holiday-notifier", h.Admin.TriggerHolidayNotifier)
				})
			})
		})
	})
	return r
}
