package retention

import (
	"context"
	"log/slog"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/retention"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type RetentionServiceImpl struct {
	db     *database.DB
	clocks attendance.ClockRecordRepository
	logs   retention.LogRepository
	fs     storage.FileStorage
	logger *slog.Logger
}

func NewRetentionService(
	db *database.DB,
	clockRepo attendance.ClockRecordRepository,
	logRepo retention.LogRepository,
	fs storage.FileStorage,
	logger *slog.Logger,
) retention.RetentionService {
	return &RetentionServiceImpl{
		db:     db,
		clocks: clockRepo,
		logs:   logRepo,
		fs:     fs,
		logger: logger,
	}
}

// Status implements retention.RetentionService.
func (s *RetentionServiceImpl) Status(ctx context.Context) (retention.Status, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return retention.Status{}, err
	}

	pending, err := s.clocks.CountMediaEligible(ctx, sess.CompanyID)
	if err != nil {
		return retention.Status{}, err
	}
	cleared, err := s.clocks.CountMediaCleared(ctx, sess.CompanyID)
	if err != nil {
		return retention.Status{}, err
	}

	status := retention.Status{
		RetentionMonths: attendance.MediaRetentionMonths,
		PendingRecords:  pending,
		ClearedRecords:  cleared,
	}

	latest, err := s.logs.LatestCreatedAt(ctx, sess.CompanyID)
	if err != nil {
		return retention.Status{}, err
	}
	if latest != nil {
		status.LastCleanupAt = &latest.CreatedAt
	}
	return status, nil
}

// Pending implements retention.RetentionService.
func (s *RetentionServiceImpl) Pending(ctx context.Context, limit int) ([]attendance.ClockRecord, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = retention.DefaultCleanupBatch
	}
	return s.clocks.ListMediaEligible(ctx, sess.CompanyID, limit)
}

// Logs implements retention.RetentionService.
func (s *RetentionServiceImpl) Logs(ctx context.Context, limit int) ([]retention.LogEntry, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = retention.DefaultCleanupBatch
	}
	return s.logs.List(ctx, sess.CompanyID, limit)
}

// Cleanup implements retention.RetentionService. Each record commits on its
// own so a failure mid-run leaves everything before it consistent.
func (s *RetentionServiceImpl) Cleanup(ctx context.Context, dryRun bool) (retention.CleanupResult, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return retention.CleanupResult{}, err
	}

	result := retention.CleanupResult{DryRun: dryRun}

	records, err := s.clocks.ListMediaEligible(ctx, sess.CompanyID, retention.DefaultCleanupBatch)
	if err != nil {
		return result, err
	}

	for _, rec := range records {
		if dryRun {
			result.RecordIDs = append(result.RecordIDs, rec.ID)
			result.Processed++
			continue
		}

		if err := s.clearRecord(ctx, rec, sess.EmployeeID); err != nil {
			s.logger.Error("retention cleanup: record failed",
				"record_id", rec.ID, "error", err)
			result.Failed++
			continue
		}
		result.RecordIDs = append(result.RecordIDs, rec.ID)
		result.Processed++
	}

	if !dryRun {
		s.logger.Info("retention cleanup finished",
			"processed", result.Processed, "failed", result.Failed)
	}
	return result, nil
}

// mediaFields lists the photo columns holding media on the record, with the
// stored blob path for each.
func mediaFields(rec attendance.ClockRecord) (fields []string, paths []string) {
	photos := []struct {
		column string
		key    *string
	}{
		{"clock_in_1_photo", rec.ClockIn1Photo},
		{"clock_out_1_photo", rec.ClockOut1Photo},
		{"clock_in_2_photo", rec.ClockIn2Photo},
		{"clock_out_2_photo", rec.ClockOut2Photo},
	}
	for _, p := range photos {
		if p.key != nil {
			fields = append(fields, p.column)
			paths = append(paths, *p.key)
		}
	}
	return fields, paths
}

func (s *RetentionServiceImpl) clearRecord(ctx context.Context, rec attendance.ClockRecord, deletedBy int64) error {
	fields, paths := mediaFields(rec)

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.clocks.ClearMedia(txCtx, rec.ID, rec.CompanyID); err != nil {
			return err
		}
		return s.logs.Create(txCtx, retention.LogEntry{
			CompanyID:     rec.CompanyID,
			ClockRecordID: rec.ID,
			FieldsCleared: fields,
			DeletedBy:     &deletedBy,
			Verified:      true,
		})
	})
	if err != nil {
		return err
	}

	// Blob deletion happens after the commit; a leftover file is harmless,
	// a dangling reference is not.
	for _, path := range paths {
		if err := s.fs.Delete(ctx, path); err != nil {
			s.logger.Warn("retention cleanup: blob delete failed",
				"record_id", rec.ID, "path", path, "error", err)
		}
	}
	return nil
}
