package advance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/advance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type AdvanceServiceImpl struct {
	db *database.DB
	advance.AdvanceRepository
	employees employee.EmployeeRepository
}

func NewAdvanceService(
	db *database.DB,
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		db:                db,
		AdvanceRepository: advanceRepo,
		employees:         employeeRepo,
	}
}

// Create implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Create(ctx context.Context, req advance.CreateRequest) (advance.SalaryAdvance, error) {
	if err := req.Validate(); err != nil {
		return advance.SalaryAdvance{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID, sess.CompanyID); err != nil {
		return advance.SalaryAdvance{}, err
	}

	return s.AdvanceRepository.Create(ctx, advance.SalaryAdvance{
		CompanyID:              sess.CompanyID,
		EmployeeID:             req.EmployeeID,
		Amount:                 req.Amount,
		DeductionMethod:        req.DeductionMethod,
		InstallmentAmount:      req.InstallmentAmount,
		ExpectedDeductionMonth: req.ExpectedDeductionMonth,
		ExpectedDeductionYear:  req.ExpectedDeductionYear,
		Reason:                 req.Reason,
		Status:                 advance.StatusPending,
	})
}

// Get implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Get(ctx context.Context, id int64) (advance.SalaryAdvance, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}
	return s.AdvanceRepository.GetByID(ctx, id, sess.CompanyID)
}

// List implements advance.AdvanceService.
func (s *AdvanceServiceImpl) List(ctx context.Context, filter advance.Filter) ([]advance.SalaryAdvance, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.AdvanceRepository.List(ctx, filter, sess.CompanyID)
}

// Approve implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Approve(ctx context.Context, id int64) (advance.SalaryAdvance, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}

	a, err := s.AdvanceRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}
	if a.Status != advance.StatusPending {
		return advance.SalaryAdvance{}, advance.ErrAlreadyProcessed
	}

	now := time.Now()
	a.Status = advance.StatusActive
	a.ApprovedBy = &sess.EmployeeID
	a.ApprovedAt = &now

	if err := s.AdvanceRepository.Update(ctx, a); err != nil {
		return advance.SalaryAdvance{}, err
	}
	return a, nil
}

// Cancel implements advance.AdvanceService. Only a pending or untouched
// active advance can be cancelled.
func (s *AdvanceServiceImpl) Cancel(ctx context.Context, req advance.CancelRequest) (advance.SalaryAdvance, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}

	a, err := s.AdvanceRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}
	switch a.Status {
	case advance.StatusPending:
	case advance.StatusActive:
		if a.TotalDeducted.Sign() > 0 {
			return advance.SalaryAdvance{}, advance.ErrAlreadyProcessed
		}
	default:
		return advance.SalaryAdvance{}, advance.ErrAlreadyProcessed
	}

	a.Status = advance.StatusCancelled
	if req.Reason != "" {
		a.CancelReason = &req.Reason
	}

	if err := s.AdvanceRepository.Update(ctx, a); err != nil {
		return advance.SalaryAdvance{}, err
	}
	return a, nil
}

// Deduct implements advance.AdvanceService. The row lock serialises
// concurrent deductions against the same advance.
func (s *AdvanceServiceImpl) Deduct(ctx context.Context, req advance.DeductRequest) (advance.SalaryAdvance, error) {
	if err := req.Validate(); err != nil {
		return advance.SalaryAdvance{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return advance.SalaryAdvance{}, err
	}

	var a advance.SalaryAdvance
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		a, err = s.AdvanceRepository.GetByIDForUpdate(txCtx, req.AdvanceID, sess.CompanyID)
		if err != nil {
			return err
		}
		if a.Status != advance.StatusActive {
			return advance.ErrNotActive
		}
		if req.Amount.GreaterThan(a.RemainingBalance) {
			return advance.ErrOverDeduction
		}

		a.TotalDeducted = a.TotalDeducted.Add(req.Amount)
		a.RemainingBalance = a.RemainingBalance.Sub(req.Amount)
		if a.RemainingBalance.Sign() <= 0 {
			a.Status = advance.StatusCompleted
		}
		if err := s.AdvanceRepository.Update(txCtx, a); err != nil {
			return err
		}

		return s.AdvanceRepository.CreateDeduction(txCtx, advance.AdvanceDeduction{
			AdvanceID:   a.ID,
			Amount:      req.Amount,
			Source:      req.Source,
			ReferenceID: req.ReferenceID,
		})
	})
	if err != nil {
		return advance.SalaryAdvance{}, err
	}
	return a, nil
}

// Outstanding implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Outstanding(ctx context.Context, employeeID int64) (decimal.Decimal, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.AdvanceRepository.OutstandingByEmployee(ctx, employeeID, sess.CompanyID)
}

// Deductions implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Deductions(ctx context.Context, advanceID int64) ([]advance.AdvanceDeduction, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.AdvanceRepository.GetByID(ctx, advanceID, sess.CompanyID); err != nil {
		return nil, err
	}
	return s.AdvanceRepository.ListDeductions(ctx, advanceID)
}
