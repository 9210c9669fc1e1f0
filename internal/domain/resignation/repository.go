package resignation

import (
	"context"
	"time"
)

type ResignationRepository interface {
	Create(ctx context.Context, r Resignation) (Resignation, error)
	GetByID(ctx context.Context, id int64, companyID int64) (Resignation, error)
	// GetActiveByEmployee returns the pending or clearing resignation for an
	// employee, or nil.
	GetActiveByEmployee(ctx context.Context, employeeID int64, companyID int64) (*Resignation, error)
	Update(ctx context.Context, r Resignation) error
	List(ctx context.Context, filter Filter, companyID int64) ([]Resignation, error)
	// ListDuePastLastDay returns clearing resignations whose last working day
	// is strictly before the given date, across all companies. Used by the
	// daily status updater.
	ListDuePastLastDay(ctx context.Context, before time.Time) ([]Resignation, error)
}

type ClearanceRepository interface {
	BulkCreate(ctx context.Context, items []ClearanceItem) error
	DeleteByResignation(ctx context.Context, resignationID int64) error
	ListByResignation(ctx context.Context, resignationID int64) ([]ClearanceItem, error)
	GetItem(ctx context.Context, itemID int64, resignationID int64) (ClearanceItem, error)
	UpdateItem(ctx context.Context, item ClearanceItem) error
	// AllCompleted reports whether the checklist is non-empty and every item
	// on it is done.
	AllCompleted(ctx context.Context, resignationID int64) (bool, error)
	ListTemplates(ctx context.Context, companyID int64) ([]ClearanceTemplate, error)
}
