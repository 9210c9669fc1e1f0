package http

import (
	"encoding/json"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
)

type ClaimHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)

	ForPayroll(w http.ResponseWriter, r *http.Request)
	LinkToPayroll(w http.ResponseWriter, r *http.Request)

	PendingCount(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Categories(w http.ResponseWriter, r *http.Request)
	AllowedTypes(w http.ResponseWriter, r *http.Request)
}

type ClaimHandlerImpl struct {
	service claim.ClaimService
}

func NewClaimHandler(service claim.ClaimService) ClaimHandler {
	return &ClaimHandlerImpl{service: service}
}

func claimFilter(r *http.Request) claim.Filter {
	return claim.Filter{
		EmployeeID: queryInt64(r, "employee_id"),
		Status:     queryString(r, "status"),
		Category:   queryString(r, "category"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}
}

// List implements ClaimHandler.
func (h *ClaimHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.List(r.Context(), claimFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, claims)
}

// Get implements ClaimHandler.
func (h *ClaimHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// Create implements ClaimHandler. The intake result carries the
// auto-approval outcome and any vision warnings.
func (h *ClaimHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req claim.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Claim submitted", result)
}

// Update implements ClaimHandler.
func (h *ClaimHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req claim.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	updated, err := h.service.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim updated", updated)
}

// Approve implements ClaimHandler.
func (h *ClaimHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	approved, err := h.service.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim approved", approved)
}

// Reject implements ClaimHandler.
func (h *ClaimHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req claim.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	rejected, err := h.service.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim rejected", rejected)
}

// Revert implements ClaimHandler.
func (h *ClaimHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	reverted, err := h.service.Revert(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Claim reverted to pending", reverted)
}

// BulkApprove implements ClaimHandler.
func (h *ClaimHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req claim.BulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approved, err := h.service.BulkApprove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"approved": approved})
}

// ForPayroll implements ClaimHandler.
func (h *ClaimHandlerImpl) ForPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := queryInt64(r, "employee_id")
	if employeeID == nil {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

	claims, err := h.service.ForPayroll(r.Context(), *employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, claims)
}

// LinkToPayroll implements ClaimHandler.
func (h *ClaimHandlerImpl) LinkToPayroll(w http.ResponseWriter, r *http.Request) {
	var req claim.LinkToPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	linked, err := h.service.LinkToPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"linked": linked})
}

// PendingCount implements ClaimHandler.
func (h *ClaimHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.PendingCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int{"pending": count})
}

// Summary implements ClaimHandler.
func (h *ClaimHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Summary(r.Context(), claimFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

// Categories implements ClaimHandler. The closed category list.
func (h *ClaimHandlerImpl) Categories(w http.ResponseWriter, r *http.Request) {
	response.Success(w, claim.Categories)
}

// AllowedTypes implements ClaimHandler.
func (h *ClaimHandlerImpl) AllowedTypes(w http.ResponseWriter, r *http.Request) {
	employeeID := idParam(r, "employeeId")
	if employeeID == 0 {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	types, err := h.service.AllowedTypes(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}
