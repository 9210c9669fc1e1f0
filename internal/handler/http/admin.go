package http

import (
	"encoding/json"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/retention"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/service/driversync"
	notificationsvc "github.com/astaka-hr/hrms-backend-go/internal/service/notification"
	resignationsvc "github.com/astaka-hr/hrms-backend-go/internal/service/resignation"
)

// AdminHandler exposes the retention console, the driver-sync console and
// manual triggers for the scheduled jobs.
type AdminHandler interface {
	RetentionStatus(w http.ResponseWriter, r *http.Request)
	RetentionPending(w http.ResponseWriter, r *http.Request)
	RetentionLogs(w http.ResponseWriter, r *http.Request)
	RetentionCleanup(w http.ResponseWriter, r *http.Request)

	DriverSyncTest(w http.ResponseWriter, r *http.Request)
	DriverSyncDrivers(w http.ResponseWriter, r *http.Request)
	DriverSyncShifts(w http.ResponseWriter, r *http.Request)
	DriverSyncRun(w http.ResponseWriter, r *http.Request)

	TriggerResignationUpdate(w http.ResponseWriter, r *http.Request)
	TriggerHolidayNotifier(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	retention   retention.RetentionService
	driverSync  *driversync.DriverSyncService
	statusJob   *resignationsvc.StatusUpdaterJob
	notifierJob *notificationsvc.HolidayNotifierJob
}

func NewAdminHandler(
	retentionService retention.RetentionService,
	driverSync *driversync.DriverSyncService,
	statusJob *resignationsvc.StatusUpdaterJob,
	notifierJob *notificationsvc.HolidayNotifierJob,
) AdminHandler {
	return &AdminHandlerImpl{
		retention:   retentionService,
		driverSync:  driverSync,
		statusJob:   statusJob,
		notifierJob: notifierJob,
	}
}

// RetentionStatus implements AdminHandler.
func (h *AdminHandlerImpl) RetentionStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.retention.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// RetentionPending implements AdminHandler.
func (h *AdminHandlerImpl) RetentionPending(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := queryInt(r, "limit"); l != nil && *l > 0 {
		limit = *l
	}

	records, err := h.retention.Pending(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// RetentionLogs implements AdminHandler.
func (h *AdminHandlerImpl) RetentionLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := queryInt(r, "limit"); l != nil && *l > 0 {
		limit = *l
	}

	logs, err := h.retention.Logs(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, logs)
}

// RetentionCleanup implements AdminHandler. dry_run may come as a query
// parameter or in the body.
func (h *AdminHandlerImpl) RetentionCleanup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DryRun bool `json:"dry_run"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	dryRun := body.DryRun || queryBool(r, "dry_run")

	result, err := h.retention.Cleanup(r.Context(), dryRun)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// DriverSyncTest implements AdminHandler.
func (h *AdminHandlerImpl) DriverSyncTest(w http.ResponseWriter, r *http.Request) {
	if err := h.driverSync.Test(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "AA Alive connection OK", nil)
}

// DriverSyncDrivers implements AdminHandler.
func (h *AdminHandlerImpl) DriverSyncDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.driverSync.Drivers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, drivers)
}

// DriverSyncShifts implements AdminHandler.
func (h *AdminHandlerImpl) DriverSyncShifts(w http.ResponseWriter, r *http.Request) {
	date := queryString(r, "date")
	if date == nil {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	shifts, err := h.driverSync.Shifts(r.Context(), *date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// DriverSyncRun implements AdminHandler. Accepts either a single date or a
// start/end range; with an empty body it syncs yesterday and today.
func (h *AdminHandlerImpl) DriverSyncRun(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date  *string `json:"date"`
		Start *string `json:"start"`
		End   *string `json:"end"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	ctx := r.Context()
	switch {
	case body.Date != nil:
		date, err := dateutil.ParseDate(*body.Date)
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		result, err := h.driverSync.SyncDate(ctx, date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	case body.Start != nil && body.End != nil:
		start, err := dateutil.ParseDate(*body.Start)
		if err != nil {
			response.BadRequest(w, "start must be in YYYY-MM-DD format", nil)
			return
		}
		end, err := dateutil.ParseDate(*body.End)
		if err != nil {
			response.BadRequest(w, "end must be in YYYY-MM-DD format", nil)
			return
		}
		result, err := h.driverSync.SyncRange(ctx, start, end)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	default:
		result, err := h.driverSync.Run(ctx)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
	}
}

// TriggerResignationUpdate implements AdminHandler.
func (h *AdminHandlerImpl) TriggerResignationUpdate(w http.ResponseWriter, r *http.Request) {
	result, err := h.statusJob.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// TriggerHolidayNotifier implements AdminHandler.
func (h *AdminHandlerImpl) TriggerHolidayNotifier(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifierJob.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
