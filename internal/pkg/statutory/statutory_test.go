package statutory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSingleEmployee(t *testing.T) {
	d := Calculate(Input{
		Basic:         decimal.NewFromInt(3000),
		MaritalStatus: "single",
		Age:           30,
	})

	// EPF rounds up to the next ringgit.
	assert.Equal(t, "330", d.EPF.String())
	assert.Equal(t, "15", d.SOCSO.String())
	assert.Equal(t, "6", d.EIS.String())
	// Annual 36000 less 9000 personal relief and 3960 EPF relief leaves
	// 23040 chargeable: 150 + 91.20 tax, 20.10 monthly.
	assert.Equal(t, "20.1", d.PCB.String())
}

func TestCalculateContributionCeiling(t *testing.T) {
	d := Calculate(Input{
		Basic:         decimal.NewFromInt(7000),
		MaritalStatus: "single",
		Age:           40,
	})

	// SOCSO and EIS wages cap at 6000; EPF does not.
	assert.Equal(t, "30", d.SOCSO.String())
	assert.Equal(t, "12", d.EIS.String())
	assert.Equal(t, "770", d.EPF.String())
}

func TestCalculateAgeSixtyStopsContributions(t *testing.T) {
	d := Calculate(Input{
		Basic:         decimal.NewFromInt(3000),
		MaritalStatus: "single",
		Age:           60,
	})

	assert.True(t, d.EPF.IsZero())
	assert.True(t, d.SOCSO.IsZero())
	assert.True(t, d.EIS.IsZero())
}

func TestCalculateReliefsSuppressSmallPCB(t *testing.T) {
	// Spouse and child reliefs push the monthly deduction under the RM 10
	// floor, so nothing is withheld.
	d := Calculate(Input{
		Basic:         decimal.NewFromInt(3000),
		MaritalStatus: "married",
		SpouseWorking: false,
		ChildrenCount: 2,
		Age:           35,
	})

	assert.True(t, d.PCB.IsZero())
}

func TestCalculateZeroWages(t *testing.T) {
	d := Calculate(Input{MaritalStatus: "single", Age: 30})

	assert.True(t, d.Total().IsZero())
}
