package commission

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/commission"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type CommissionServiceImpl struct {
	db *database.DB
	commission.SalesRepository
	commission.PayoutRepository
	schedules schedule.ScheduleRepository
	outlets   company.OutletRepository
}

func NewCommissionService(
	db *database.DB,
	salesRepo commission.SalesRepository,
	payoutRepo commission.PayoutRepository,
	scheduleRepo schedule.ScheduleRepository,
	outletRepo company.OutletRepository,
) commission.CommissionService {
	return &CommissionServiceImpl{
		db:               db,
		SalesRepository:  salesRepo,
		PayoutRepository: payoutRepo,
		schedules:        scheduleRepo,
		outlets:          outletRepo,
	}
}

// UpsertSales implements commission.CommissionService.
func (s *CommissionServiceImpl) UpsertSales(ctx context.Context, req commission.UpsertSalesRequest) (commission.Sales, error) {
	if err := req.Validate(); err != nil {
		return commission.Sales{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return commission.Sales{}, err
	}

	rate := commission.DefaultRate
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}

	row := commission.Sales{
		CompanyID:      sess.CompanyID,
		OutletID:       req.OutletID,
		DepartmentID:   req.DepartmentID,
		PeriodMonth:    req.PeriodMonth,
		PeriodYear:     req.PeriodYear,
		TotalSales:     req.TotalSales,
		CommissionRate: rate,
		CommissionPool: req.TotalSales.Mul(rate).Div(decimal.NewFromInt(100)).Round(2),
		Status:         commission.StatusDraft,
	}
	return s.SalesRepository.Upsert(ctx, row)
}

// GetSales implements commission.CommissionService.
func (s *CommissionServiceImpl) GetSales(ctx context.Context, id int64) (commission.Sales, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return commission.Sales{}, err
	}
	return s.SalesRepository.GetByID(ctx, id, sess.CompanyID)
}

// ListSales implements commission.CommissionService.
func (s *CommissionServiceImpl) ListSales(ctx context.Context, filter commission.SalesFilter) ([]commission.Sales, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.SalesRepository.List(ctx, filter, sess.CompanyID)
}

// DeleteSales implements commission.CommissionService.
func (s *CommissionServiceImpl) DeleteSales(ctx context.Context, id int64) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}

	row, err := s.SalesRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return err
	}
	if row.Status == commission.StatusFinalized {
		return commission.ErrDeleteFinalized
	}
	return s.SalesRepository.Delete(ctx, id, sess.CompanyID)
}

// shiftTally accumulates one employee's countable shifts in a period.
type shiftTally struct {
	normal int
	ph     int
}

// tallyShifts counts the shifts that share in the pool. Legacy rows that
// predate the status column count the same as scheduled ones; off-day rows
// and off templates never count. Public holidays weigh double.
func tallyShifts(shifts []schedule.Schedule) (map[int64]*shiftTally, int) {
	tallies := make(map[int64]*shiftTally)
	total := 0
	for _, shift := range shifts {
		if shift.Status != schedule.StatusScheduled && shift.Status != "" {
			continue
		}
		if shift.TemplateIsOff != nil && *shift.TemplateIsOff {
			continue
		}

		t := tallies[shift.EmployeeID]
		if t == nil {
			t = &shiftTally{}
			tallies[shift.EmployeeID] = t
		}
		if shift.IsPublicHoliday {
			t.ph++
			total += commission.PHWeight
		} else {
			t.normal++
			total++
		}
	}
	return tallies, total
}

// Calculate implements commission.CommissionService. The whole run happens in
// one transaction so a rerun never leaves a half-rewritten payout set.
func (s *CommissionServiceImpl) Calculate(ctx context.Context, salesID int64) (commission.CalculateResult, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return commission.CalculateResult{}, err
	}

	var result commission.CalculateResult
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		row, err := s.SalesRepository.GetByID(txCtx, salesID, sess.CompanyID)
		if err != nil {
			return err
		}
		if row.Status == commission.StatusFinalized {
			return commission.ErrAlreadyFinalized
		}

		start, end := commission.PeriodBounds(row.PeriodYear, row.PeriodMonth)

		var shifts []schedule.Schedule
		switch {
		case row.OutletID != nil:
			shifts, err = s.schedules.ListForPeriodByOutlet(txCtx, *row.OutletID, start, end, sess.CompanyID)
		case row.DepartmentID != nil:
			shifts, err = s.schedules.ListForPeriodByDepartment(txCtx, *row.DepartmentID, start, end, sess.CompanyID)
		default:
			return commission.ErrGroupDimension
		}
		if err != nil {
			return err
		}

		tallies, total := tallyShifts(shifts)

		// Per-shift value keeps 4 decimal places; rounding to cents happens
		// only on the payout amounts, so the amounts sum back to the pool.
		perShift := decimal.Zero
		if total > 0 {
			perShift = row.CommissionPool.Div(decimal.NewFromInt(int64(total))).Round(4)
		}

		payouts := make([]commission.Payout, 0, len(tallies))
		for employeeID, t := range tallies {
			effective := t.normal + t.ph*commission.PHWeight
			payouts = append(payouts, commission.Payout{
				SalesID:          row.ID,
				EmployeeID:       employeeID,
				NormalShifts:     t.normal,
				PHShifts:         t.ph,
				EffectiveShifts:  effective,
				CommissionAmount: perShift.Mul(decimal.NewFromInt(int64(effective))).Round(2),
			})
		}
		sort.Slice(payouts, func(i, j int) bool { return payouts[i].EmployeeID < payouts[j].EmployeeID })

		if err := s.PayoutRepository.ReplaceForSales(txCtx, row.ID, payouts); err != nil {
			return err
		}

		row.TotalEffectiveShifts = total
		row.PerShiftValue = perShift
		if err := s.SalesRepository.Update(txCtx, row); err != nil {
			return err
		}

		result = commission.CalculateResult{
			Sales:                row,
			Payouts:              payouts,
			EmployeesPaid:        len(payouts),
			TotalEffectiveShifts: total,
		}
		return nil
	})
	if err != nil {
		return commission.CalculateResult{}, err
	}
	return result, nil
}

// Finalize implements commission.CommissionService. A row with no calculated
// payouts cannot be finalized.
func (s *CommissionServiceImpl) Finalize(ctx context.Context, salesID int64) (commission.Sales, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return commission.Sales{}, err
	}

	row, err := s.SalesRepository.GetByID(ctx, salesID, sess.CompanyID)
	if err != nil {
		return commission.Sales{}, err
	}
	if row.Status == commission.StatusFinalized {
		return commission.Sales{}, commission.ErrAlreadyFinalized
	}

	count, err := s.PayoutRepository.CountBySales(ctx, salesID)
	if err != nil {
		return commission.Sales{}, err
	}
	if count == 0 {
		return commission.Sales{}, commission.ErrNoPayouts
	}

	now := time.Now()
	row.Status = commission.StatusFinalized
	row.FinalizedBy = &sess.EmployeeID
	row.FinalizedAt = &now

	if err := s.SalesRepository.Update(ctx, row); err != nil {
		return commission.Sales{}, err
	}
	return row, nil
}

// Revert implements commission.CommissionService.
func (s *CommissionServiceImpl) Revert(ctx context.Context, salesID int64) (commission.Sales, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return commission.Sales{}, err
	}

	row, err := s.SalesRepository.GetByID(ctx, salesID, sess.CompanyID)
	if err != nil {
		return commission.Sales{}, err
	}
	if row.Status != commission.StatusFinalized {
		return commission.Sales{}, commission.ErrNotFinalized
	}

	row.Status = commission.StatusDraft
	row.FinalizedBy = nil
	row.FinalizedAt = nil

	if err := s.SalesRepository.Update(ctx, row); err != nil {
		return commission.Sales{}, err
	}
	return row, nil
}

// Payouts implements commission.CommissionService.
func (s *CommissionServiceImpl) Payouts(ctx context.Context, salesID int64) ([]commission.Payout, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.SalesRepository.GetByID(ctx, salesID, sess.CompanyID); err != nil {
		return nil, err
	}
	return s.PayoutRepository.ListBySales(ctx, salesID)
}

// EmployeePayouts implements commission.CommissionService.
func (s *CommissionServiceImpl) EmployeePayouts(ctx context.Context, employeeID int64, year *int) ([]commission.Payout, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.PayoutRepository.ListByEmployee(ctx, employeeID, year, sess.CompanyID)
}

// Outlets implements commission.CommissionService.
func (s *CommissionServiceImpl) Outlets(ctx context.Context) ([]company.Outlet, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.outlets.List(ctx, sess.CompanyID)
}
