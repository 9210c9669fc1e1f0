package http

import (
	"encoding/json"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/commission"
	"github.com/astaka-hr/hrms-backend-go/internal/handler/http/response"
)

type CommissionHandler interface {
	ListSales(w http.ResponseWriter, r *http.Request)
	GetSales(w http.ResponseWriter, r *http.Request)
	UpsertSales(w http.ResponseWriter, r *http.Request)
	DeleteSales(w http.ResponseWriter, r *http.Request)

	Calculate(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)

	Payouts(w http.ResponseWriter, r *http.Request)
	EmployeePayouts(w http.ResponseWriter, r *http.Request)
	Outlets(w http.ResponseWriter, r *http.Request)
}

type CommissionHandlerImpl struct {
	service commission.CommissionService
}

func NewCommissionHandler(service commission.CommissionService) CommissionHandler {
	return &CommissionHandlerImpl{service: service}
}

// ListSales implements CommissionHandler.
func (h *CommissionHandlerImpl) ListSales(w http.ResponseWriter, r *http.Request) {
	filter := commission.SalesFilter{
		OutletID:     queryInt64(r, "outlet_id"),
		DepartmentID: queryInt64(r, "department_id"),
		PeriodMonth:  queryInt(r, "month"),
		PeriodYear:   queryInt(r, "year"),
		Status:       queryString(r, "status"),
	}

	sales, err := h.service.ListSales(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sales)
}

// GetSales implements CommissionHandler.
func (h *CommissionHandlerImpl) GetSales(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	sales, err := h.service.GetSales(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sales)
}

// UpsertSales implements CommissionHandler.
func (h *CommissionHandlerImpl) UpsertSales(w http.ResponseWriter, r *http.Request) {
	var req commission.UpsertSalesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	sales, err := h.service.UpsertSales(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sales)
}

// DeleteSales implements CommissionHandler.
func (h *CommissionHandlerImpl) DeleteSales(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	if err := h.service.DeleteSales(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sales record deleted", nil)
}

// Calculate implements CommissionHandler.
func (h *CommissionHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	result, err := h.service.Calculate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Finalize implements CommissionHandler.
func (h *CommissionHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	sales, err := h.service.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Commission finalized", sales)
}

// Revert implements CommissionHandler.
func (h *CommissionHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	sales, err := h.service.Revert(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Commission reverted to draft", sales)
}

// Payouts implements CommissionHandler.
func (h *CommissionHandlerImpl) Payouts(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		response.BadRequest(w, "Sales ID is required", nil)
		return
	}

	payouts, err := h.service.Payouts(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payouts)
}

// EmployeePayouts implements CommissionHandler.
func (h *CommissionHandlerImpl) EmployeePayouts(w http.ResponseWriter, r *http.Request) {
	employeeID := idParam(r, "employeeId")
	if employeeID == 0 {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	payouts, err := h.service.EmployeePayouts(r.Context(), employeeID, queryInt(r, "year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payouts)
}

// Outlets implements CommissionHandler.
func (h *CommissionHandlerImpl) Outlets(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.service.Outlets(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, outlets)
}
