package claims

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/vision"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type ClaimServiceImpl struct {
	db *database.DB
	claim.ClaimRepository
	employees employee.EmployeeRepository
	fs        storage.FileStorage
	reader    vision.ReceiptReader
	logger    *slog.Logger
}

// NewClaimService builds the claims engine. reader may be nil, in which case
// every claim requires manual approval.
func NewClaimService(
	db *database.DB,
	claimRepo claim.ClaimRepository,
	employeeRepo employee.EmployeeRepository,
	fs storage.FileStorage,
	reader vision.ReceiptReader,
	logger *slog.Logger,
) claim.ClaimService {
	return &ClaimServiceImpl{
		db:              db,
		ClaimRepository: claimRepo,
		employees:       employeeRepo,
		fs:              fs,
		reader:          reader,
		logger:          logger,
	}
}

// receiptHash hashes the raw image bytes, so the same picture re-encoded with
// a data: prefix still collides.
func receiptHash(imageBase64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(storage.StripDataPrefix(imageBase64))
	if err != nil {
		return "", fmt.Errorf("invalid base64 receipt image: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Create implements claim.ClaimService.
func (s *ClaimServiceImpl) Create(ctx context.Context, req claim.CreateRequest) (claim.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return claim.CreateResult{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.CreateResult{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID, sess.CompanyID); err != nil {
		return claim.CreateResult{}, err
	}

	claimDate, err := dateutil.ParseDate(req.ClaimDate)
	if err != nil {
		return claim.CreateResult{}, err
	}

	result := claim.CreateResult{}
	c := claim.Claim{
		CompanyID:   sess.CompanyID,
		EmployeeID:  req.EmployeeID,
		ClaimDate:   claimDate,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      claim.StatusPending,
	}

	if c.Category == claim.CategoryAccommodation && c.Amount.GreaterThan(claim.AccommodationCap) {
		c.Amount = claim.AccommodationCap
		c.AmountCapped = true
		result.AmountCapped = true
	}

	var extraction *vision.Extraction
	if req.Receipt != nil && *req.Receipt != "" {
		hash, err := receiptHash(*req.Receipt)
		if err != nil {
			return claim.CreateResult{}, err
		}
		c.ReceiptHash = &hash

		dup, err := s.ClaimRepository.FindByReceiptHash(ctx, hash, sess.CompanyID)
		if err != nil {
			return claim.CreateResult{}, err
		}
		if dup != nil {
			return claim.CreateResult{}, duplicateError(dup)
		}

		key, err := storage.SaveBase64(ctx, s.fs, "receipts", *req.Receipt)
		if err != nil {
			return claim.CreateResult{}, err
		}
		c.ReceiptPath = &key

		extraction = s.extract(ctx, *req.Receipt, &c)
		if extraction != nil && extraction.Confidence != vision.ConfidenceUnreadable &&
			extraction.Merchant != "" && extraction.Date != "" && extraction.Amount != nil {
			similar, err := s.ClaimRepository.FindSimilar(ctx,
				extraction.Merchant, extraction.Date, extraction.Amount.String(), sess.CompanyID)
			if err != nil {
				return claim.CreateResult{}, err
			}
			if similar != nil {
				return claim.CreateResult{}, duplicateError(similar)
			}
		}
	}

	if s.passesAutoApproval(c, extraction) {
		c.Status = claim.StatusApproved
		c.AutoApproved = true
		result.AutoApproved = true
	} else if req.Receipt != nil && extraction == nil {
		result.Warnings = append(result.Warnings, "receipt could not be read; manual approval required")
	}

	created, err := s.ClaimRepository.Create(ctx, c)
	if err != nil {
		return claim.CreateResult{}, err
	}
	result.Claim = created
	return result, nil
}

func duplicateError(dup *claim.Claim) error {
	name := ""
	if dup.EmployeeName != nil {
		name = *dup.EmployeeName
	}
	return &claim.DuplicateReceiptError{ClaimID: dup.ID, EmployeeName: name}
}

// extract runs the vision reader and copies its fields onto the claim.
// Failures are logged and treated as no extraction.
func (s *ClaimServiceImpl) extract(ctx context.Context, imageBase64 string, c *claim.Claim) *vision.Extraction {
	if s.reader == nil {
		return nil
	}

	out, err := s.reader.ReadReceipt(ctx, imageBase64)
	if err != nil {
		s.logger.Error("receipt extraction failed", "employee_id", c.EmployeeID, "error", err)
		return nil
	}

	c.AIAmount = out.Amount
	if out.Merchant != "" {
		c.AIMerchant = &out.Merchant
	}
	if out.Date != "" {
		c.AIDate = &out.Date
	}
	c.AIConfidence = &out.Confidence
	if out.Currency != "" {
		c.AICurrency = &out.Currency
	}
	return &out
}

// passesAutoApproval is the intake gate: extracted amount matches exactly,
// amount within the limit, readable confidence. Duplicates were already
// rejected upstream.
func (s *ClaimServiceImpl) passesAutoApproval(c claim.Claim, extraction *vision.Extraction) bool {
	if extraction == nil || extraction.Amount == nil {
		return false
	}
	if extraction.Confidence == vision.ConfidenceUnreadable {
		return false
	}
	if !extraction.Amount.Equal(c.Amount) {
		return false
	}
	return c.Amount.LessThanOrEqual(claim.AutoApproveLimit)
}

// Update implements claim.ClaimService. Only pending claims may be edited.
func (s *ClaimServiceImpl) Update(ctx context.Context, req claim.UpdateRequest) (claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.Claim{}, err
	}

	c, err := s.ClaimRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}
	if c.Status != claim.StatusPending {
		return claim.Claim{}, claim.ErrAlreadyProcessed
	}

	if req.ClaimDate != nil {
		date, err := dateutil.ParseDate(*req.ClaimDate)
		if err != nil {
			return claim.Claim{}, err
		}
		c.ClaimDate = date
	}
	if req.Category != nil {
		if !claim.IsValidCategory(*req.Category) {
			return claim.Claim{}, claim.ErrInvalidCategory
		}
		c.Category = *req.Category
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
		c.AmountCapped = false
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if c.Category == claim.CategoryAccommodation && c.Amount.GreaterThan(claim.AccommodationCap) {
		c.Amount = claim.AccommodationCap
		c.AmountCapped = true
	}

	if err := s.ClaimRepository.Update(ctx, c); err != nil {
		return claim.Claim{}, err
	}
	return c, nil
}

// Get implements claim.ClaimService.
func (s *ClaimServiceImpl) Get(ctx context.Context, id int64) (claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.Claim{}, err
	}
	return s.ClaimRepository.GetByID(ctx, id, sess.CompanyID)
}

// List implements claim.ClaimService.
func (s *ClaimServiceImpl) List(ctx context.Context, filter claim.Filter) ([]claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ClaimRepository.List(ctx, filter, sess.CompanyID)
}

// Approve implements claim.ClaimService.
func (s *ClaimServiceImpl) Approve(ctx context.Context, id int64) (claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.Claim{}, err
	}
	return s.approve(ctx, id, sess)
}

func (s *ClaimServiceImpl) approve(ctx context.Context, id int64, sess session.Session) (claim.Claim, error) {
	c, err := s.ClaimRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}
	if c.Status != claim.StatusPending {
		return claim.Claim{}, claim.ErrAlreadyProcessed
	}

	now := time.Now()
	c.Status = claim.StatusApproved
	c.ApprovedBy = &sess.EmployeeID
	c.ApprovedAt = &now
	c.RejectReason = nil

	if err := s.ClaimRepository.Update(ctx, c); err != nil {
		return claim.Claim{}, err
	}
	return c, nil
}

// Reject implements claim.ClaimService.
func (s *ClaimServiceImpl) Reject(ctx context.Context, req claim.RejectRequest) (claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.Claim{}, err
	}

	c, err := s.ClaimRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}
	if c.Status != claim.StatusPending {
		return claim.Claim{}, claim.ErrAlreadyProcessed
	}

	now := time.Now()
	c.Status = claim.StatusRejected
	c.ApprovedBy = &sess.EmployeeID
	c.ApprovedAt = &now
	if req.Reason != "" {
		c.RejectReason = &req.Reason
	}

	if err := s.ClaimRepository.Update(ctx, c); err != nil {
		return claim.Claim{}, err
	}
	return c, nil
}

// Revert implements claim.ClaimService.
func (s *ClaimServiceImpl) Revert(ctx context.Context, id int64) (claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return claim.Claim{}, err
	}

	c, err := s.ClaimRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return claim.Claim{}, err
	}
	if c.Status != claim.StatusApproved {
		return claim.Claim{}, claim.ErrNotApproved
	}
	if c.LinkedPayrollItemID != nil {
		return claim.Claim{}, claim.ErrAlreadyLinked
	}

	c.Status = claim.StatusPending
	c.ApprovedBy = nil
	c.ApprovedAt = nil
	c.AutoApproved = false

	if err := s.ClaimRepository.Update(ctx, c); err != nil {
		return claim.Claim{}, err
	}
	return c, nil
}

// BulkApprove implements claim.ClaimService. Already-processed claims are
// skipped, not errors.
func (s *ClaimServiceImpl) BulkApprove(ctx context.Context, req claim.BulkApproveRequest) (int, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, id := range req.IDs {
		if _, err := s.approve(ctx, id, sess); err != nil {
			s.logger.Warn("bulk approve skipped claim", "claim_id", id, "error", err)
			continue
		}
		approved++
	}
	return approved, nil
}

// ForPayroll implements claim.ClaimService.
func (s *ClaimServiceImpl) ForPayroll(ctx context.Context, employeeID int64) ([]claim.Claim, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ClaimRepository.ListApprovedUnlinked(ctx, employeeID, sess.CompanyID)
}

// LinkToPayroll implements claim.ClaimService.
func (s *ClaimServiceImpl) LinkToPayroll(ctx context.Context, req claim.LinkToPayrollRequest) (int64, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.ClaimRepository.LinkToPayrollItem(ctx, req.IDs, req.PayrollItemID, sess.CompanyID)
}

// PendingCount implements claim.ClaimService.
func (s *ClaimServiceImpl) PendingCount(ctx context.Context) (int, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.ClaimRepository.PendingCount(ctx, sess.CompanyID)
}

// Summary implements claim.ClaimService.
func (s *ClaimServiceImpl) Summary(ctx context.Context, filter claim.Filter) ([]claim.SummaryRow, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ClaimRepository.Summary(ctx, filter, sess.CompanyID)
}

// AllowedTypes implements claim.ClaimService. Today every active employee may
// claim under the full closed list; the lookup still validates the employee.
func (s *ClaimServiceImpl) AllowedTypes(ctx context.Context, employeeID int64) ([]string, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, employeeID, sess.CompanyID); err != nil {
		return nil, err
	}

	types := make([]string, len(claim.Categories))
	copy(types, claim.Categories)
	return types, nil
}
