package claims

import (
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/vision"
)

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestPassesAutoApproval(t *testing.T) {
	s := &ClaimServiceImpl{}
	c := claim.Claim{Amount: decimal.NewFromInt(50)}

	assert.True(t, s.passesAutoApproval(c, &vision.Extraction{
		Amount:     amountPtr(50),
		Confidence: vision.ConfidenceHigh,
	}))
}

func TestPassesAutoApprovalRejections(t *testing.T) {
	s := &ClaimServiceImpl{}
	c := claim.Claim{Amount: decimal.NewFromInt(50)}

	// No extraction at all, e.g. when the vision reader is not configured.
	assert.False(t, s.passesAutoApproval(c, nil))

	// Extracted amount missing or different from the claimed amount.
	assert.False(t, s.passesAutoApproval(c, &vision.Extraction{Confidence: vision.ConfidenceHigh}))
	assert.False(t, s.passesAutoApproval(c, &vision.Extraction{
		Amount:     amountPtr(49),
		Confidence: vision.ConfidenceHigh,
	}))

	// Unreadable receipts never auto-approve.
	assert.False(t, s.passesAutoApproval(c, &vision.Extraction{
		Amount:     amountPtr(50),
		Confidence: vision.ConfidenceUnreadable,
	}))

	// Over the auto-approve limit even with a perfect match.
	big := claim.Claim{Amount: claim.AutoApproveLimit.Add(decimal.NewFromInt(1))}
	bigAmount := big.Amount
	assert.False(t, s.passesAutoApproval(big, &vision.Extraction{
		Amount:     &bigAmount,
		Confidence: vision.ConfidenceHigh,
	}))
}

func TestReceiptHash(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("receipt bytes"))

	h1, err := receiptHash(raw)
	require.NoError(t, err)

	// The same image behind a data: prefix hashes identically.
	h2, err := receiptHash("data:image/jpeg;base64," + raw)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	other, err := receiptHash(base64.StdEncoding.EncodeToString([]byte("other")))
	require.NoError(t, err)
	assert.NotEqual(t, h1, other)

	_, err = receiptHash("not base64!!!")
	assert.Error(t, err)
}
