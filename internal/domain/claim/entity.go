package claim

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPaid     = "paid"
)

// Categories is the closed list of claim categories.
var Categories = []string{
	"travel", "parking", "toll", "meal", "accommodation",
	"medical", "phone", "office_supplies", "fuel", "other",
}

// CategoryAccommodation carries a per-claim amount cap.
const CategoryAccommodation = "accommodation"

// AccommodationCap is the maximum accommodation claim amount.
var AccommodationCap = decimal.NewFromInt(80)

// AutoApproveLimit is the largest claim the intake gate may auto-approve.
var AutoApproveLimit = decimal.NewFromInt(100)

type Claim struct {
	ID          int64
	CompanyID   int64
	EmployeeID  int64
	ClaimDate   time.Time
	Category    string
	Amount      decimal.Decimal
	Description *string
	ReceiptPath *string
	ReceiptHash *string
	Status      string

	// AI-extracted fields from the receipt reader.
	AIAmount     *decimal.Decimal
	AIMerchant   *string
	AIDate       *string
	AIConfidence *string
	AICurrency   *string

	AutoApproved bool
	AmountCapped bool

	LinkedPayrollItemID *int64

	ApprovedBy   *int64
	ApprovedAt   *time.Time
	RejectReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// IsValidCategory reports whether c is in the closed category list.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
