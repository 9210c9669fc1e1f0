package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
	attendancesvc "github.com/astaka-hr/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	AdminUpsert(w http.ResponseWriter, r *http.Request)
	AdminSetAction(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ApproveWithSchedule(w http.ResponseWriter, r *http.Request)
	ApproveWithoutSchedule(w http.ResponseWriter, r *http.Request)

	ApproveOT(w http.ResponseWriter, r *http.Request)
	RejectOT(w http.ResponseWriter, r *http.Request)
	BulkApproveOT(w http.ResponseWriter, r *http.Request)

	Recalculate(w http.ResponseWriter, r *http.Request)

	Clock(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)

	Summary(w http.ResponseWriter, r *http.Request)
	OTForPayroll(w http.ResponseWriter, r *http.Request)

	NeedsReview(w http.ResponseWriter, r *http.Request)
	MarkReviewed(w http.ResponseWriter, r *http.Request)
	TriggerAutoClockOut(w http.ResponseWriter, r *http.Request)
	AutoClockOutStats(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	service attendance.AttendanceService
	acoJob  *attendancesvc.AutoClockOutJob
}

func NewAttendanceHandler(service attendance.AttendanceService, acoJob *attendancesvc.AutoClockOutJob) AttendanceHandler {
	return &AttendanceHandlerImpl{service: service, acoJob: acoJob}
}

func attendanceFilter(r *http.Request) attendance.Filter {
	return attendance.Filter{
		EmployeeID: queryInt64(r, "employee_id"),
		OutletID:   queryInt64(r, "outlet_id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Region:     queryString(r, "region"),
	}
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// AdminUpsert implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AdminUpsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.AdminUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// AdminSetAction implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AdminSetAction(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	req.Action = chi.URLParam(r, "action")
	if req.ID == 0 {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := h.service.AdminSetAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

func (h *AttendanceHandlerImpl) approveVariant(
	w http.ResponseWriter, r *http.Request,
	call func(r *http.Request, req attendance.ApproveRequest) (attendance.RecordResponse, error),
) {
	var req attendance.ApproveRequest
	// Body is optional on plain approvals.
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := call(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record approved", record)
}

// Approve implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.approveVariant(w, r, func(r *http.Request, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
		return h.service.Approve(r.Context(), req)
	})
}

// ApproveWithSchedule implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ApproveWithSchedule(w http.ResponseWriter, r *http.Request) {
	h.approveVariant(w, r, func(r *http.Request, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
		return h.service.ApproveWithSchedule(r.Context(), req)
	})
}

// ApproveWithoutSchedule implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ApproveWithoutSchedule(w http.ResponseWriter, r *http.Request) {
	h.approveVariant(w, r, func(r *http.Request, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
		return h.service.ApproveWithoutSchedule(r.Context(), req)
	})
}

// Reject implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req attendance.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record rejected", record)
}

// ApproveOT implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ApproveOT(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := h.service.ApproveOT(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime approved", record)
}

// RejectOT implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RejectOT(w http.ResponseWriter, r *http.Request) {
	var req attendance.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.RejectOT(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime rejected", record)
}

// BulkApproveOT implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BulkApproveOT(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkOTRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approved, err := h.service.BulkApproveOT(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"approved": approved})
}

// Recalculate implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.service.Recalculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Clock implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.Clock(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	var req attendance.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.service.Today(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	var req attendance.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	records, err := h.service.History(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Summary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Summary(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

// OTForPayroll implements AttendanceHandler.
func (h *AttendanceHandlerImpl) OTForPayroll(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Year must be numeric", nil)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		response.BadRequest(w, "Month must be numeric", nil)
		return
	}

	rows, err := h.service.OTForPayroll(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

// NeedsReview implements AttendanceHandler.
func (h *AttendanceHandlerImpl) NeedsReview(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.NeedsReview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// MarkReviewed implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkReviewedRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := h.service.MarkReviewed(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record marked reviewed", record)
}

// TriggerAutoClockOut implements AttendanceHandler. Manual mirror of the
// nightly job.
func (h *AttendanceHandlerImpl) TriggerAutoClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.acoJob.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// AutoClockOutStats implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AutoClockOutStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
