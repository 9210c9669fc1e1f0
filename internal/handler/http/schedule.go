package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
)

type ScheduleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	MonthForEmployee(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListTemplates(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	UpdateTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)

	WeeklyRoster(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	BulkAssign(w http.ResponseWriter, r *http.Request)
	ClearDay(w http.ResponseWriter, r *http.Request)
	CopyMonth(w http.ResponseWriter, r *http.Request)
	Permissions(w http.ResponseWriter, r *http.Request)

	CreateExtraShift(w http.ResponseWriter, r *http.Request)
	ListExtraShifts(w http.ResponseWriter, r *http.Request)
	ApproveExtraShift(w http.ResponseWriter, r *http.Request)
	RejectExtraShift(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	service schedule.ScheduleService
}

func NewScheduleHandler(service schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{service: service}
}

func scheduleFilter(r *http.Request) schedule.Filter {
	return schedule.Filter{
		EmployeeID:   queryInt64(r, "employee_id"),
		OutletID:     queryInt64(r, "outlet_id"),
		DepartmentID: queryInt64(r, "department_id"),
		StartDate:    queryString(r, "start_date"),
		EndDate:      queryString(r, "end_date"),
		Status:       queryString(r, "status"),
	}
}

// List implements ScheduleHandler.
func (h *ScheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.List(r.Context(), scheduleFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}

// Calendar implements ScheduleHandler. Same data as List, narrowed to one
// calendar month for the roster calendar view.
func (h *ScheduleHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	month := queryInt(r, "month")
	if year == nil || month == nil || *month < 1 || *month > 12 {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	filter := scheduleFilter(r)
	first := firstOfMonth(*year, *month)
	last := lastOfMonth(*year, *month)
	filter.StartDate = &first
	filter.EndDate = &last

	schedules, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}

// MonthForEmployee implements ScheduleHandler.
func (h *ScheduleHandlerImpl) MonthForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := idParam(r, "id")
	year, yErr := strconv.Atoi(chi.URLParam(r, "year"))
	month, mErr := strconv.Atoi(chi.URLParam(r, "month"))
	if employeeID == 0 || yErr != nil || mErr != nil {
		response.BadRequest(w, "Employee ID, year and month are required", nil)
		return
	}

	schedules, err := h.service.MonthForEmployee(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}

// Create implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Schedule created", created)
}

// BulkCreate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req schedule.BulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.service.BulkCreate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Schedule ID is required", nil)
		return
	}

	var req schedule.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule updated", updated)
}

// Delete implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Schedule ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule deleted", nil)
}

// ListTemplates implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context(), !queryBool(r, "include_inactive"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

// CreateTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.CreateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift template created", created)
}

// UpdateTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Template ID is required", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.UpdateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift template updated", updated)
}

// DeleteTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Template ID is required", nil)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift template deactivated", nil)
}

// WeeklyRoster implements ScheduleHandler.
func (h *ScheduleHandlerImpl) WeeklyRoster(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	if startDate == "" {
		response.BadRequest(w, "start_date query parameter is required", nil)
		return
	}

	roster, err := h.service.WeeklyRoster(r.Context(),
		queryInt64(r, "outlet_id"), queryInt64(r, "department_id"), startDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roster)
}

// Assign implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	assigned, err := h.service.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, assigned)
}

// BulkAssign implements ScheduleHandler.
func (h *ScheduleHandlerImpl) BulkAssign(w http.ResponseWriter, r *http.Request) {
	var req schedule.BulkAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.BulkAssign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ClearDay implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ClearDay(w http.ResponseWriter, r *http.Request) {
	employeeID := queryInt64(r, "employee_id")
	date := r.URL.Query().Get("date")
	if employeeID == nil || date == "" {
		response.BadRequest(w, "employee_id and date query parameters are required", nil)
		return
	}

	if err := h.service.ClearDay(r.Context(), *employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule cleared", nil)
}

// CopyMonth implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CopyMonth(w http.ResponseWriter, r *http.Request) {
	var req schedule.CopyMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.service.CopyMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Permissions implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Permissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.Permissions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, perms)
}

// CreateExtraShift implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateExtraShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.ExtraShiftCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.CreateExtraShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Extra shift requested", created)
}

// ListExtraShifts implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListExtraShifts(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListExtraShifts(r.Context(), queryString(r, "status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ApproveExtraShift implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ApproveExtraShift(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Extra shift ID is required", nil)
		return
	}

	approved, err := h.service.ApproveExtraShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra shift approved", approved)
}

// RejectExtraShift implements ScheduleHandler.
func (h *ScheduleHandlerImpl) RejectExtraShift(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Extra shift ID is required", nil)
		return
	}

	rejected, err := h.service.RejectExtraShift(r.Context(), id, body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra shift rejected", rejected)
}

func firstOfMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format(dateutil.DateLayout)
}

func lastOfMonth(year, month int) string {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Format(dateutil.DateLayout)
}
