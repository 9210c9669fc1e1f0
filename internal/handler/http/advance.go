package http

import (
	"encoding/json"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/advance"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Deduct(w http.ResponseWriter, r *http.Request)
	Outstanding(w http.ResponseWriter, r *http.Request)
	Deductions(w http.ResponseWriter, r *http.Request)
}

type AdvanceHandlerImpl struct {
	service advance.AdvanceService
}

func NewAdvanceHandler(service advance.AdvanceService) AdvanceHandler {
	return &AdvanceHandlerImpl{service: service}
}

// List implements AdvanceHandler.
func (h *AdvanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := advance.Filter{
		EmployeeID: queryInt64(r, "employee_id"),
		Status:     queryString(r, "status"),
	}

	advances, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, advances)
}

// Get implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, a)
}

// Create implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateRequest
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
	response.Created(w, "Salary advance requested", created)
}

// Approve implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	approved, err := h.service.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary advance approved", approved)
}

// Cancel implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	var req advance.CancelRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary advance cancelled", cancelled)
}

// Deduct implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Deduct(w http.ResponseWriter, r *http.Request) {
	var req advance.DeductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AdvanceID = idParam(r, "id")
	if req.AdvanceID == 0 {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	deducted, err := h.service.Deduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Deduction recorded", deducted)
}

// Outstanding implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Outstanding(w http.ResponseWriter, r *http.Request) {
	employeeID := idParam(r, "employeeId")
	if employeeID == 0 {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	outstanding, err := h.service.Outstanding(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"outstanding": outstanding})
}

// Deductions implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Deductions(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Advance ID is required", nil)
		return
	}

	deductions, err := h.service.Deductions(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, deductions)
}
