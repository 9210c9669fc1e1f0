package http

import (
	"encoding/json"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/resignation"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
)

type ResignationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	WaiveNotice(w http.ResponseWriter, r *http.Request)

	Clearance(w http.ResponseWriter, r *http.Request)
	ClearItem(w http.ResponseWriter, r *http.Request)
	RegenerateClearance(w http.ResponseWriter, r *http.Request)

	CheckLeaves(w http.ResponseWriter, r *http.Request)
	LeaveEntitlement(w http.ResponseWriter, r *http.Request)
	CleanupLeaves(w http.ResponseWriter, r *http.Request)

	GetSettlement(w http.ResponseWriter, r *http.Request)
	CalculateSettlement(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
}

type ResignationHandlerImpl struct {
	service resignation.ResignationService
}

func NewResignationHandler(service resignation.ResignationService) ResignationHandler {
	return &ResignationHandlerImpl{service: service}
}

// List implements ResignationHandler.
func (h *ResignationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := resignation.Filter{
		EmployeeID: queryInt64(r, "employee_id"),
		OutletID:   queryInt64(r, "outlet_id"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}

	resignations, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resignations)
}

// Get implements ResignationHandler.
func (h *ResignationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// Create implements ResignationHandler.
func (h *ResignationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req resignation.CreateRequest
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
	response.Created(w, "Resignation submitted", created)
}

// Update implements ResignationHandler.
func (h *ResignationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req resignation.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation updated", updated)
}

// Approve implements ResignationHandler.
func (h *ResignationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req resignation.ApproveRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	approved, err := h.service.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation approved", approved)
}

// Reject implements ResignationHandler.
func (h *ResignationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req resignation.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	rejected, err := h.service.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation rejected", rejected)
}

// Withdraw implements ResignationHandler.
func (h *ResignationHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	withdrawn, err := h.service.Withdraw(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation withdrawn", withdrawn)
}

// Cancel implements ResignationHandler.
func (h *ResignationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation cancelled", cancelled)
}

// WaiveNotice implements ResignationHandler.
func (h *ResignationHandlerImpl) WaiveNotice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Waived bool `json:"waived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	updated, err := h.service.WaiveNotice(r.Context(), id, body.Waived)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notice waiver updated", updated)
}

// Clearance implements ResignationHandler. The checklist rides on the
// detail response.
func (h *ResignationHandlerImpl) Clearance(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail.Clearance)
}

// ClearItem implements ResignationHandler.
func (h *ResignationHandlerImpl) ClearItem(w http.ResponseWriter, r *http.Request) {
	var req resignation.ClearItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id := idParam(r, "id")
	if itemID := idParam(r, "itemId"); itemID != 0 {
		req.ItemID = itemID
	}
	if id == 0 || req.ItemID == 0 {
		response.BadRequest(w, "Resignation and item IDs are required", nil)
		return
	}

	detail, err := h.service.ClearItem(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clearance item updated", detail)
}

// RegenerateClearance implements ResignationHandler.
func (h *ResignationHandlerImpl) RegenerateClearance(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	detail, err := h.service.RegenerateClearance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clearance checklist regenerated", detail)
}

// CheckLeaves implements ResignationHandler.
func (h *ResignationHandlerImpl) CheckLeaves(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	check, err := h.service.CheckLeaves(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, check)
}

// LeaveEntitlement implements ResignationHandler.
func (h *ResignationHandlerImpl) LeaveEntitlement(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	entitlement, err := h.service.LeaveEntitlement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entitlement)
}

// CleanupLeaves implements ResignationHandler.
func (h *ResignationHandlerImpl) CleanupLeaves(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	result, err := h.service.CleanupLeaves(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetSettlement implements ResignationHandler. Returns the persisted
// breakdown without recomputing.
func (h *ResignationHandlerImpl) GetSettlement(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if detail.Resignation.SettlementBreakdown == nil {
		response.HandleError(w, resignation.ErrNoSettlement)
		return
	}
	response.Success(w, detail.Resignation.SettlementBreakdown)
}

// CalculateSettlement implements ResignationHandler.
func (h *ResignationHandlerImpl) CalculateSettlement(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	breakdown, err := h.service.CalculateSettlement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, breakdown)
}

// Process implements ResignationHandler.
func (h *ResignationHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req resignation.ProcessRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ID = idParam(r, "id")
	if req.ID == 0 {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	processed, err := h.service.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation processed", processed)
}
