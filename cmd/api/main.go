package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/config"
	appHTTP "github.com/astaka-hr/hrms-backend-go/internal/handler/http"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/aaalive"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/vision"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	advanceService "github.com/astaka-hr/hrms-backend-go/internal/service/advance"
	attendanceService "github.com/astaka-hr/hrms-backend-go/internal/service/attendance"
	claimService "github.com/astaka-hr/hrms-backend-go/internal/service/claims"
	commissionService "github.com/astaka-hr/hrms-backend-go/internal/service/commission"
	"github.com/astaka-hr/hrms-backend-go/internal/service/driversync"
	leaveService "github.com/astaka-hr/hrms-backend-go/internal/service/leave"
	notificationService "github.com/astaka-hr/hrms-backend-go/internal/service/notification"
	resignationService "github.com/astaka-hr/hrms-backend-go/internal/service/resignation"
	retentionService "github.com/astaka-hr/hrms-backend-go/internal/service/retention"
	"github.com/astaka-hr/hrms-backend-go/internal/service/scheduler"
	scheduleService "github.com/astaka-hr/hrms-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	loc := cfg.Location()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hrms-astaka"),
	)

	db, err := database.NewPostgreSQLDB(cfg.Database.URL)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	clockRepo := postgresql.NewClockRecordRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	extraShiftRepo := postgresql.NewExtraShiftRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	outletRepo := postgresql.NewOutletRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	salesRepo := postgresql.NewSalesRepository(db)
	payoutRepo := postgresql.NewPayoutRepository(db)
	claimRepo := postgresql.NewClaimRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)
	clearanceRepo := postgresql.NewClearanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	retentionLogRepo := postgresql.NewRetentionLogRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	// The receipt reader is optional; without it claim intake degrades to
	// manual approval.
	var receiptReader vision.ReceiptReader
	if client := vision.NewClient(cfg.OpenAI.APIKey); client != nil {
		receiptReader = client
	}

	aaaliveClient := aaalive.NewClient(cfg.AAAlive.BaseURL, cfg.AAAlive.APIKey)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		clockRepo,
		employeeRepo,
		scheduleRepo,
		templateRepo,
		companyRepo,
		holidayRepo,
		payrollRunRepo,
		fileStorage,
		loc,
	)
	scheduleSvc := scheduleService.NewScheduleService(
		db,
		scheduleRepo,
		templateRepo,
		extraShiftRepo,
		employeeRepo,
		holidayRepo,
		clockRepo,
		loc,
	)
	commissionSvc := commissionService.NewCommissionService(db, salesRepo, payoutRepo, scheduleRepo, outletRepo)
	claimSvc := claimService.NewClaimService(db, claimRepo, employeeRepo, fileStorage, receiptReader, logger)
	resignationSvc := resignationService.NewResignationService(
		db,
		resignationRepo,
		clearanceRepo,
		employeeRepo,
		companyRepo,
		scheduleRepo,
		leaveRequestRepo,
		leaveBalanceRepo,
		claimRepo,
		payrollRunRepo,
	)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo)
	advanceSvc := advanceService.NewAdvanceService(db, advanceRepo, employeeRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	retentionSvc := retentionService.NewRetentionService(db, clockRepo, retentionLogRepo, fileStorage, logger)

	autoClockOutJob := attendanceService.NewAutoClockOutJob(db, clockRepo, scheduleRepo, companyRepo, loc, logger)
	statusUpdaterJob := resignationService.NewStatusUpdaterJob(employeeRepo, leaveRequestRepo, loc, logger)
	holidayNotifierJob := notificationService.NewHolidayNotifierJob(
		companyRepo,
		departmentRepo,
		holidayRepo,
		employeeRepo,
		scheduleRepo,
		notificationRepo,
		loc,
		logger,
	)
	driverSyncSvc := driversync.NewDriverSyncService(aaaliveClient, companyRepo, outletRepo, employeeRepo, clockRepo, loc, logger)

	jobScheduler := scheduler.New(loc, logger, autoClockOutJob, statusUpdaterJob, driverSyncSvc, holidayNotifierJob)
	if err := jobScheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer jobScheduler.Stop()

	ja := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	router := appHTTP.NewRouter(ja, cfg.App.Env, appHTTP.Handlers{
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc, autoClockOutJob),
		Schedule:     appHTTP.NewScheduleHandler(scheduleSvc),
		Commission:   appHTTP.NewCommissionHandler(commissionSvc),
		Claim:        appHTTP.NewClaimHandler(claimSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Advance:      appHTTP.NewAdvanceHandler(advanceSvc),
		Resignation:  appHTTP.NewResignationHandler(resignationSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Admin:        appHTTP.NewAdminHandler(retentionSvc, driverSyncSvc, statusUpdaterJob, holidayNotifierJob),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
