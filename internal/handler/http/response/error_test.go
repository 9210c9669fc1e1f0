package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestHandleErrorNotFound(t *testing.T) {
	code, body := handle(t, attendance.ErrRecordNotFound)

	assert.Equal(t, 404, code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, attendance.ErrRecordNotFound.Error(), body.Error.Message)
}

func TestHandleErrorForbidden(t *testing.T) {
	code, _ := handle(t, schedule.ErrOutsideEditWindow)
	assert.Equal(t, 403, code)
}

func TestHandleErrorPrecondition(t *testing.T) {
	code, body := handle(t, claim.ErrAlreadyProcessed)

	assert.Equal(t, 400, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, claim.ErrAlreadyProcessed.Error(), body.Error.Message)
}

func TestHandleErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("approving claim: %w", claim.ErrAlreadyProcessed)
	code, _ := handle(t, wrapped)
	assert.Equal(t, 400, code)
}

func TestHandleErrorValidation(t *testing.T) {
	verrs := validator.ValidationErrors{{Field: "amount", Message: "amount is required"}}
	code, body := handle(t, verrs)

	assert.Equal(t, 422, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "amount is required", body.Error.Details["amount"])
}

func TestHandleErrorUnknown(t *testing.T) {
	code, body := handle(t, errors.New("pq: connection refused"))

	assert.Equal(t, 500, code)
	require.NotNil(t, body.Error)
	// Internal details never leak to the client.
	assert.NotContains(t, body.Error.Message, "pq:")
}
