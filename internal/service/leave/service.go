package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employees employee.EmployeeRepository
}

func NewLeaveService(
	db *database.DB,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveTypeRepository:    typeRepo,
		LeaveBalanceRepository: balanceRepo,
		LeaveRequestRepository: requestRepo,
		employees:              employeeRepo,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID, sess.CompanyID); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, sess.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	end, err := dateutil.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if end.Before(start) {
		return leave.LeaveRequest{}, leave.ErrInvalidRange
	}

	days := decimal.NewFromInt(int64(dateutil.DaysBetween(start, end) + 1))
	if req.IsHalfDay {
		if !start.Equal(end) {
			return leave.LeaveRequest{}, leave.ErrInvalidRange
		}
		days = decimal.NewFromFloat(0.5)
	}

	overlap, err := s.LeaveRequestRepository.HasOverlap(ctx, req.EmployeeID, start, end, 0, sess.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if overlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	// Paid leave is checked against the balance up front; unpaid leave has no
	// balance to consume.
	if leaveType.IsPaid {
		balance, err := s.LeaveBalanceRepository.Get(ctx, req.EmployeeID, req.LeaveTypeID, start.Year(), sess.CompanyID)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if balance == nil || balance.Remaining().LessThan(days) {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
	}

	return s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		CompanyID:   sess.CompanyID,
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		IsHalfDay:   req.IsHalfDay,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	})
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return s.LeaveRequestRepository.GetByID(ctx, id, sess.CompanyID)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.LeaveRequestRepository.List(ctx, filter, sess.CompanyID)
}

// Approve implements leave.LeaveService. The balance debit and the status
// flip commit together.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var req leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req, err = s.LeaveRequestRepository.GetByID(txCtx, id, sess.CompanyID)
		if err != nil {
			return err
		}
		if req.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		leaveType, err := s.LeaveTypeRepository.GetByID(txCtx, req.LeaveTypeID, sess.CompanyID)
		if err != nil {
			return err
		}
		if leaveType.IsPaid {
			year := req.StartDate.Year()
			balance, err := s.LeaveBalanceRepository.Get(txCtx, req.EmployeeID, req.LeaveTypeID, year, sess.CompanyID)
			if err != nil {
				return err
			}
			if balance == nil || balance.Remaining().LessThan(req.Days) {
				return leave.ErrInsufficientBalance
			}
			if err := s.LeaveBalanceRepository.AddUsed(txCtx, req.EmployeeID, req.LeaveTypeID, year, req.Days, sess.CompanyID); err != nil {
				return err
			}
		}

		now := time.Now()
		req.Status = leave.StatusApproved
		req.ApprovedBy = &sess.EmployeeID
		req.ApprovedAt = &now
		return s.LeaveRequestRepository.Update(txCtx, req)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequest) (leave.LeaveRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	lr, err := s.LeaveRequestRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	now := time.Now()
	lr.Status = leave.StatusRejected
	lr.ApprovedBy = &sess.EmployeeID
	lr.ApprovedAt = &now
	if req.Reason != "" {
		lr.RejectReason = &req.Reason
	}

	if err := s.LeaveRequestRepository.Update(ctx, lr); err != nil {
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// Cancel implements leave.LeaveService. Cancelling an approved paid request
// hands the days back to the balance in the same transaction.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var req leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req, err = s.LeaveRequestRepository.GetByID(txCtx, id, sess.CompanyID)
		if err != nil {
			return err
		}

		switch req.Status {
		case leave.StatusPending:
			// No balance was touched yet.
		case leave.StatusApproved:
			leaveType, err := s.LeaveTypeRepository.GetByID(txCtx, req.LeaveTypeID, sess.CompanyID)
			if err != nil {
				return err
			}
			if leaveType.IsPaid {
				if err := s.LeaveBalanceRepository.AddUsed(txCtx, req.EmployeeID, req.LeaveTypeID, req.StartDate.Year(), req.Days.Neg(), sess.CompanyID); err != nil {
					return err
				}
			}
		default:
			return leave.ErrAlreadyProcessed
		}

		req.Status = leave.StatusCancelled
		return s.LeaveRequestRepository.Update(txCtx, req)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// Types implements leave.LeaveService.
func (s *LeaveServiceImpl) Types(ctx context.Context) ([]leave.LeaveType, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.LeaveTypeRepository.ListActive(ctx, sess.CompanyID)
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context, employeeID int64, year int) ([]leave.LeaveBalance, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.LeaveBalanceRepository.ListByEmployee(ctx, employeeID, year, sess.CompanyID)
}
