package resignation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/resignation"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/statutory"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type ResignationServiceImpl struct {
	db *database.DB
	resignation.ResignationRepository
	resignation.ClearanceRepository
	employees     employee.EmployeeRepository
	companies     company.CompanyRepository
	schedules     schedule.ScheduleRepository
	leaveRequests leave.LeaveRequestRepository
	leaveBalances leave.LeaveBalanceRepository
	claims        claim.ClaimRepository
	payrollRuns   payroll.RunRepository
}

func NewResignationService(
	db *database.DB,
	resignationRepo resignation.ResignationRepository,
	clearanceRepo resignation.ClearanceRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	scheduleRepo schedule.ScheduleRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	claimRepo claim.ClaimRepository,
	payrollRunRepo payroll.RunRepository,
) resignation.ResignationService {
	return &ResignationServiceImpl{
		db:                    db,
		ResignationRepository: resignationRepo,
		ClearanceRepository:   clearanceRepo,
		employees:             employeeRepo,
		companies:             companyRepo,
		schedules:             scheduleRepo,
		leaveRequests:         leaveRequestRepo,
		leaveBalances:         leaveBalanceRepo,
		claims:                claimRepo,
		payrollRuns:           payrollRunRepo,
	}
}

// Create implements resignation.ResignationService. The last working day
// defaults to notice date plus the required notice period.
func (s *ResignationServiceImpl) Create(ctx context.Context, req resignation.CreateRequest) (resignation.Resignation, error) {
	if err := req.Validate(); err != nil {
		return resignation.Resignation{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if emp.Status == employee.StatusResigned || emp.EmploymentStatus == employee.EmploymentExited {
		return resignation.Resignation{}, resignation.ErrAlreadyResigned
	}

	active, err := s.ResignationRepository.GetActiveByEmployee(ctx, emp.ID, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if active != nil {
		return resignation.Resignation{}, resignation.ErrAlreadyResigned
	}

	noticeDate, err := dateutil.ParseDate(req.NoticeDate)
	if err != nil {
		return resignation.Resignation{}, err
	}

	required := resignation.NoticeDays(emp.ServiceMonths(noticeDate))

	lastWorkingDay := noticeDate.AddDate(0, 0, required)
	if req.LastWorkingDay != nil {
		lastWorkingDay, err = dateutil.ParseDate(*req.LastWorkingDay)
		if err != nil {
			return resignation.Resignation{}, err
		}
	}

	return s.ResignationRepository.Create(ctx, resignation.Resignation{
		CompanyID:          sess.CompanyID,
		EmployeeID:         emp.ID,
		NoticeDate:         noticeDate,
		LastWorkingDay:     lastWorkingDay,
		Reason:             req.Reason,
		Status:             resignation.StatusPending,
		RequiredNoticeDays: required,
		ActualNoticeDays:   dateutil.DaysBetween(noticeDate, lastWorkingDay),
	})
}

// Update implements resignation.ResignationService. Only pending
// resignations can be amended; the notice arithmetic is redone from the new
// dates.
func (s *ResignationServiceImpl) Update(ctx context.Context, req resignation.UpdateRequest) (resignation.Resignation, error) {
	if err := req.Validate(); err != nil {
		return resignation.Resignation{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if r.Status != resignation.StatusPending {
		return resignation.Resignation{}, resignation.ErrNotPending
	}

	if req.NoticeDate != nil {
		r.NoticeDate, err = dateutil.ParseDate(*req.NoticeDate)
		if err != nil {
			return resignation.Resignation{}, err
		}
	}
	if req.LastWorkingDay != nil {
		r.LastWorkingDay, err = dateutil.ParseDate(*req.LastWorkingDay)
		if err != nil {
			return resignation.Resignation{}, err
		}
	}
	if req.Reason != nil {
		r.Reason = req.Reason
	}

	emp, err := s.employees.GetByID(ctx, r.EmployeeID, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	r.RequiredNoticeDays = resignation.NoticeDays(emp.ServiceMonths(r.NoticeDate))
	r.ActualNoticeDays = dateutil.DaysBetween(r.NoticeDate, r.LastWorkingDay)

	if err := s.ResignationRepository.Update(ctx, r); err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// Get implements resignation.ResignationService.
func (s *ResignationServiceImpl) Get(ctx context.Context, id int64) (resignation.Detail, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Detail{}, err
	}
	return s.detail(ctx, id, sess.CompanyID)
}

func (s *ResignationServiceImpl) detail(ctx context.Context, id int64, companyID int64) (resignation.Detail, error) {
	r, err := s.ResignationRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return resignation.Detail{}, err
	}
	items, err := s.ClearanceRepository.ListByResignation(ctx, r.ID)
	if err != nil {
		return resignation.Detail{}, err
	}
	return resignation.Detail{Resignation: r, Clearance: items}, nil
}

// List implements resignation.ResignationService.
func (s *ResignationServiceImpl) List(ctx context.Context, filter resignation.Filter) ([]resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ResignationRepository.List(ctx, filter, sess.CompanyID)
}

// Approve implements resignation.ResignationService.
func (s *ResignationServiceImpl) Approve(ctx context.Context, req resignation.ApproveRequest) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	var r resignation.Resignation
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		r, err = s.ResignationRepository.GetByID(txCtx, req.ID, sess.CompanyID)
		if err != nil {
			return err
		}
		if r.Status != resignation.StatusPending {
			return resignation.ErrNotPending
		}

		now := time.Now()
		r.Status = resignation.StatusClearing
		r.NoticeWaived = req.WaiveNotice
		r.ApprovedBy = &sess.EmployeeID
		r.ApprovedAt = &now
		if err := s.ResignationRepository.Update(txCtx, r); err != nil {
			return err
		}

		if err := s.seedClearance(txCtx, r); err != nil {
			return err
		}

		lwd := r.LastWorkingDay
		return s.employees.SetEmploymentStatus(txCtx, r.EmployeeID, sess.CompanyID, employee.EmploymentNotice, &lwd)
	})
	if err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// seedClearance copies the tenant's checklist templates onto the resignation,
// falling back to the shared defaults when the tenant has none.
func (s *ResignationServiceImpl) seedClearance(ctx context.Context, r resignation.Resignation) error {
	templates, err := s.ClearanceRepository.ListTemplates(ctx, r.CompanyID)
	if err != nil {
		return err
	}
	if len(templates) == 0 && r.CompanyID != resignation.FallbackTemplateCompanyID {
		templates, err = s.ClearanceRepository.ListTemplates(ctx, resignation.FallbackTemplateCompanyID)
		if err != nil {
			return err
		}
	}

	items := make([]resignation.ClearanceItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, resignation.ClearanceItem{
			ResignationID: r.ID,
			Label:         t.Label,
			SortOrder:     t.SortOrder,
		})
	}
	if len(items) == 0 {
		return nil
	}
	return s.ClearanceRepository.BulkCreate(ctx, items)
}

// Reject implements resignation.ResignationService.
func (s *ResignationServiceImpl) Reject(ctx context.Context, req resignation.RejectRequest) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if r.Status != resignation.StatusPending {
		return resignation.Resignation{}, resignation.ErrNotPending
	}

	r.Status = resignation.StatusRejected
	if req.Reason != "" {
		r.RejectReason = &req.Reason
	}
	if err := s.ResignationRepository.Update(ctx, r); err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// Withdraw implements resignation.ResignationService.
func (s *ResignationServiceImpl) Withdraw(ctx context.Context, id int64) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if r.Status != resignation.StatusPending {
		return resignation.Resignation{}, resignation.ErrNotPending
	}

	r.Status = resignation.StatusWithdrawn
	if err := s.ResignationRepository.Update(ctx, r); err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// Cancel implements resignation.ResignationService. Cancelling a clearing
// resignation takes the employee off notice in the same transaction.
func (s *ResignationServiceImpl) Cancel(ctx context.Context, id int64) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	var r resignation.Resignation
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		r, err = s.ResignationRepository.GetByID(txCtx, id, sess.CompanyID)
		if err != nil {
			return err
		}
		if r.Status != resignation.StatusPending && r.Status != resignation.StatusClearing {
			return resignation.ErrAlreadyProcessed
		}

		wasClearing := r.Status == resignation.StatusClearing
		r.Status = resignation.StatusCancelled
		if err := s.ResignationRepository.Update(txCtx, r); err != nil {
			return err
		}

		if wasClearing {
			return s.employees.SetEmploymentStatus(txCtx, r.EmployeeID, sess.CompanyID, employee.EmploymentEmployed, nil)
		}
		return nil
	})
	if err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// WaiveNotice implements resignation.ResignationService.
func (s *ResignationServiceImpl) WaiveNotice(ctx context.Context, id int64, waived bool) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if r.Status != resignation.StatusPending && r.Status != resignation.StatusClearing {
		return resignation.Resignation{}, resignation.ErrAlreadyProcessed
	}

	r.NoticeWaived = waived
	if err := s.ResignationRepository.Update(ctx, r); err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}

// ClearItem implements resignation.ResignationService. Toggling an item
// refreshes the parent clearance_completed flag.
func (s *ResignationServiceImpl) ClearItem(ctx context.Context, resignationID int64, req resignation.ClearItemRequest) (resignation.Detail, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Detail{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, resignationID, sess.CompanyID)
	if err != nil {
		return resignation.Detail{}, err
	}
	if r.Status != resignation.StatusClearing {
		return resignation.Detail{}, resignation.ErrNotClearing
	}

	item, err := s.ClearanceRepository.GetItem(ctx, req.ItemID, r.ID)
	if err != nil {
		return resignation.Detail{}, err
	}

	item.IsCompleted = req.IsCompleted
	item.Remark = req.Remark
	if req.IsCompleted {
		now := time.Now()
		item.CompletedBy = &sess.EmployeeID
		item.CompletedAt = &now
	} else {
		item.CompletedBy = nil
		item.CompletedAt = nil
	}
	if err := s.ClearanceRepository.UpdateItem(ctx, item); err != nil {
		return resignation.Detail{}, err
	}

	done, err := s.ClearanceRepository.AllCompleted(ctx, r.ID)
	if err != nil {
		return resignation.Detail{}, err
	}
	if done != r.ClearanceCompleted {
		r.ClearanceCompleted = done
		if err := s.ResignationRepository.Update(ctx, r); err != nil {
			return resignation.Detail{}, err
		}
	}

	return s.detail(ctx, r.ID, sess.CompanyID)
}

// RegenerateClearance implements resignation.ResignationService.
func (s *ResignationServiceImpl) RegenerateClearance(ctx context.Context, resignationID int64) (resignation.Detail, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Detail{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		r, err := s.ResignationRepository.GetByID(txCtx, resignationID, sess.CompanyID)
		if err != nil {
			return err
		}
		if r.Status != resignation.StatusClearing {
			return resignation.ErrNotClearing
		}

		if err := s.ClearanceRepository.DeleteByResignation(txCtx, r.ID); err != nil {
			return err
		}
		if err := s.seedClearance(txCtx, r); err != nil {
			return err
		}

		if r.ClearanceCompleted {
			r.ClearanceCompleted = false
			return s.ResignationRepository.Update(txCtx, r)
		}
		return nil
	})
	if err != nil {
		return resignation.Detail{}, err
	}
	return s.detail(ctx, resignationID, sess.CompanyID)
}

// CheckLeaves implements resignation.ResignationService.
func (s *ResignationServiceImpl) CheckLeaves(ctx context.Context, id int64) (resignation.LeaveCheck, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.LeaveCheck{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return resignation.LeaveCheck{}, err
	}
	lwd := dateutil.DateOf(r.LastWorkingDay)

	pending, err := s.leaveRequests.ListPendingStartingAfter(ctx, r.EmployeeID, lwd, sess.CompanyID)
	if err != nil {
		return resignation.LeaveCheck{}, err
	}
	approved, err := s.leaveRequests.ListApprovedStartingAfter(ctx, r.EmployeeID, lwd, sess.CompanyID)
	if err != nil {
		return resignation.LeaveCheck{}, err
	}

	return resignation.LeaveCheck{
		PendingAfterLastDay:  pending,
		ApprovedAfterLastDay: approved,
	}, nil
}

// LeaveEntitlement implements resignation.ResignationService.
func (s *ResignationServiceImpl) LeaveEntitlement(ctx context.Context, id int64) (resignation.LeaveEntitlement, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.LeaveEntitlement{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return resignation.LeaveEntitlement{}, err
	}
	year := r.LastWorkingDay.Year()

	days, err := s.leaveBalances.EncashableRemaining(ctx, r.EmployeeID, year, sess.CompanyID)
	if err != nil {
		return resignation.LeaveEntitlement{}, err
	}
	balances, err := s.leaveBalances.ListByEmployee(ctx, r.EmployeeID, year, sess.CompanyID)
	if err != nil {
		return resignation.LeaveEntitlement{}, err
	}

	return resignation.LeaveEntitlement{
		Year:           year,
		EncashableDays: days,
		Balances:       balances,
	}, nil
}

// CleanupLeaves implements resignation.ResignationService.
func (s *ResignationServiceImpl) CleanupLeaves(ctx context.Context, id int64) (resignation.LeaveCleanupResult, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.LeaveCleanupResult{}, err
	}

	var result resignation.LeaveCleanupResult
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		r, err := s.ResignationRepository.GetByID(txCtx, id, sess.CompanyID)
		if err != nil {
			return err
		}
		lwd := dateutil.DateOf(r.LastWorkingDay)

		pending, err := s.leaveRequests.CancelPendingStartingAfter(txCtx, r.EmployeeID, lwd, sess.CompanyID)
		if err != nil {
			return err
		}
		result.PendingCancelled = int(pending)

		approved, err := s.cancelApprovedPaidLeave(txCtx, r.EmployeeID, lwd, sess.CompanyID)
		if err != nil {
			return err
		}
		result.ApprovedCancelled = approved
		return nil
	})
	if err != nil {
		return resignation.LeaveCleanupResult{}, err
	}
	return result, nil
}

// cancelApprovedPaidLeave cancels approved paid leave starting after the
// cutoff and hands the days back to the year's balance.
func (s *ResignationServiceImpl) cancelApprovedPaidLeave(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) (int, error) {
	approved, err := s.leaveRequests.ListApprovedStartingAfter(ctx, employeeID, cutoff, companyID)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, lr := range approved {
		if !lr.TypeIsPaid {
			continue
		}
		lr.Status = leave.StatusCancelled
		if err := s.leaveRequests.Update(ctx, lr); err != nil {
			return cancelled, err
		}
		if err := s.leaveBalances.AddUsed(ctx, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year(), lr.Days.Neg(), companyID); err != nil {
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}

// CalculateSettlement implements resignation.ResignationService.
func (s *ResignationServiceImpl) CalculateSettlement(ctx context.Context, id int64) (resignation.Breakdown, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Breakdown{}, err
	}

	r, err := s.ResignationRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	if r.Status != resignation.StatusPending && r.Status != resignation.StatusClearing {
		return resignation.Breakdown{}, resignation.ErrAlreadyProcessed
	}

	breakdown, err := s.computeSettlement(ctx, &r)
	if err != nil {
		return resignation.Breakdown{}, err
	}

	if err := s.ResignationRepository.Update(ctx, r); err != nil {
		return resignation.Breakdown{}, err
	}
	return breakdown, nil
}

// computeSettlement fills the settlement fields on r without saving it.
func (s *ResignationServiceImpl) computeSettlement(ctx context.Context, r *resignation.Resignation) (resignation.Breakdown, error) {
	emp, err := s.employees.GetByID(ctx, r.EmployeeID, r.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	comp, err := s.companies.GetByID(ctx, r.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	settings := comp.Settings

	lwd := dateutil.DateOf(r.LastWorkingDay)
	year, month := lwd.Year(), lwd.Month()

	// 1. Prorated salary on weekdays worked, never calendar days. A finalized
	// payroll for the month means the salary was already paid out.
	weekdaysInMonth := dateutil.WeekdaysInMonth(year, month)
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	weekdaysWorked := dateutil.WeekdaysBetween(firstOfMonth, lwd)

	proratedSalary := decimal.Zero
	alreadyPaid, err := s.payrollRuns.HasFinalizedRun(ctx, int(month), year, r.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	if !alreadyPaid && weekdaysInMonth > 0 {
		proratedSalary = emp.BasicSalary.
			Mul(decimal.NewFromInt(int64(weekdaysWorked))).
			Div(decimal.NewFromInt(int64(weekdaysInMonth))).
			Round(2)
	}

	// 2. Leave encashment over the paid-type balances for the exit year.
	workingDays := settings.SettlementWorkingDaysPerMonth
	if workingDays <= 0 {
		workingDays = company.DefaultSettings().SettlementWorkingDaysPerMonth
	}
	dailyRate := emp.BasicSalary.Div(decimal.NewFromInt(int64(workingDays)))

	leaveDays, err := s.leaveBalances.EncashableRemaining(ctx, emp.ID, year, r.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	encashment := leaveDays.Mul(dailyRate).Mul(settings.SettlementLeaveEncashmentRate).Round(2)

	// 3. Approved claims not yet swept into payroll.
	pendingClaims := decimal.Zero
	unswept, err := s.claims.ListApprovedUnlinked(ctx, emp.ID, r.CompanyID)
	if err != nil {
		return resignation.Breakdown{}, err
	}
	for _, c := range unswept {
		pendingClaims = pendingClaims.Add(c.Amount)
	}

	// 4. Prorated bonus, opt-in per company.
	proratedBonus := decimal.Zero
	if settings.SettlementIncludeProratedBonus {
		proratedBonus = emp.DefaultBonus.
			Mul(decimal.NewFromInt(int64(month))).
			Div(decimal.NewFromInt(12)).
			Round(2)
	}

	// 5. Notice buy-out for unserved notice, owed by the employee.
	shortfall := r.NoticeShortfall()
	buyout := decimal.Zero
	if shortfall > 0 {
		buyout = dailyRate.Mul(decimal.NewFromInt(int64(shortfall))).Round(2)
	}

	// 6. Statutory deductions on the taxable components only.
	deductions := statutory.Calculate(statutory.Input{
		Basic:         proratedSalary,
		Bonus:         proratedBonus,
		MaritalStatus: emp.MaritalStatus,
		SpouseWorking: emp.SpouseWorking,
		ChildrenCount: emp.ChildrenCount,
		Age:           employee.AgeFromIC(emp.ICNumber, lwd),
	})

	gross := proratedSalary.Add(encashment).Add(pendingClaims).Add(proratedBonus)
	totalDeductions := deductions.Total().Add(buyout)
	net := gross.Sub(totalDeductions)

	breakdown := resignation.Breakdown{
		ProratedSalary:  proratedSalary,
		WeekdaysWorked:  weekdaysWorked,
		WeekdaysInMonth: weekdaysInMonth,
		LeaveEncashment: encashment,
		LeaveDays:       leaveDays,
		PendingClaims:   pendingClaims,
		ProratedBonus:   proratedBonus,
		NoticeShortfall: shortfall,
		NoticeBuyout:    buyout,
		EPF:             deductions.EPF,
		SOCSO:           deductions.SOCSO,
		EIS:             deductions.EIS,
		PCB:             deductions.PCB,
		Gross:           gross,
		TotalDeductions: totalDeductions,
		Net:             net,
	}

	r.SettlementBreakdown = &breakdown
	r.SettlementNet = &net
	return breakdown, nil
}

// Process implements resignation.ResignationService. All side effects commit
// or roll back together; the status guard prevents a double run.
func (s *ResignationServiceImpl) Process(ctx context.Context, req resignation.ProcessRequest) (resignation.Resignation, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return resignation.Resignation{}, err
	}

	var r resignation.Resignation
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		r, err = s.ResignationRepository.GetByID(txCtx, req.ID, sess.CompanyID)
		if err != nil {
			return err
		}
		if r.Status != resignation.StatusClearing {
			return resignation.ErrNotClearing
		}

		if !req.OverrideClearance {
			done, err := s.ClearanceRepository.AllCompleted(txCtx, r.ID)
			if err != nil {
				return err
			}
			if !done {
				return resignation.ErrClearanceIncomplete
			}
		}

		if r.SettlementBreakdown == nil {
			if _, err := s.computeSettlement(txCtx, &r); err != nil {
				return err
			}
		}

		now := time.Now()
		r.Status = resignation.StatusCompleted
		r.SettlementDate = &now
		r.ProcessedBy = &sess.EmployeeID
		if err := s.ResignationRepository.Update(txCtx, r); err != nil {
			return err
		}

		lwd := dateutil.DateOf(r.LastWorkingDay)
		if err := s.employees.MarkExited(txCtx, r.EmployeeID, sess.CompanyID, lwd); err != nil {
			return err
		}

		if _, err := s.schedules.DeleteFutureByEmployee(txCtx, r.EmployeeID, lwd, sess.CompanyID); err != nil {
			return err
		}

		if _, err := s.leaveRequests.CancelPendingStartingAfter(txCtx, r.EmployeeID, lwd, sess.CompanyID); err != nil {
			return err
		}

		// Approved paid leave beyond the last day is cancelled and its days
		// handed back to the balance of the year it was booked in.
		_, err = s.cancelApprovedPaidLeave(txCtx, r.EmployeeID, lwd, sess.CompanyID)
		return err
	})
	if err != nil {
		return resignation.Resignation{}, err
	}
	return r, nil
}
