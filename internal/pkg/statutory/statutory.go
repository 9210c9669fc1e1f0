// Package statutory computes the Malaysian employee-side statutory
// deductions: EPF, SOCSO, EIS and PCB (monthly tax deduction).
//
// Callers treat this package as a black box: give it the month's pay
// components and the employee's profile, get the four deductions back.
// Rates follow the published schedules in simplified banded form.
package statutory

import (
	"github.com/shopspring/decimal"
)

// Input is one month of remuneration plus the reliefs-relevant profile.
type Input struct {
	Basic         decimal.Decimal
	Commission    decimal.Decimal
	Bonus         decimal.Decimal
	MaritalStatus string // single|married|divorced|widowed
	SpouseWorking bool
	ChildrenCount int
	Age           int
}

// Deductions are the employee-side amounts withheld for the month.
type Deductions struct {
	EPF   decimal.Decimal
	SOCSO decimal.Decimal
	EIS   decimal.Decimal
	PCB   decimal.Decimal
}

var (
	epfRate         = decimal.NewFromFloat(0.11)
	socsoRate       = decimal.NewFromFloat(0.005)
	eisRate         = decimal.NewFromFloat(0.002)
	contributionCap = decimal.NewFromInt(6000) // SOCSO/EIS wage ceiling
)

// Total returns the sum of all four deductions.
func (d Deductions) Total() decimal.Decimal {
	return d.EPF.Add(d.SOCSO).Add(d.EIS).Add(d.PCB)
}

// Calculate computes the employee deductions for one month of pay.
func Calculate(in Input) Deductions {
	wages := in.Basic.Add(in.Commission).Add(in.Bonus)
	if wages.Sign() <= 0 {
		return Deductions{
			EPF:   decimal.Zero,
			SOCSO: decimal.Zero,
			EIS:   decimal.Zero,
			PCB:   decimal.Zero,
		}
	}

	return Deductions{
		EPF:   epf(wages, in.Age),
		SOCSO: socso(wages, in.Age),
		EIS:   eis(wages, in.Age),
		PCB:   pcb(in, wages),
	}
}

// epf is the employee share. EPF rounds the contribution up to the next
// whole ringgit. Employees aged 60 and above stop contributing.
func epf(wages decimal.Decimal, age int) decimal.Decimal {
	if age >= 60 {
		return decimal.Zero
	}
	return wages.Mul(epfRate).Ceil()
}

// socso is the employee share of the Employment Injury + Invalidity scheme.
// Wages are capped at the contribution ceiling; employees aged 60 and above
// are covered under Employment Injury only, which carries no employee share.
func socso(wages decimal.Decimal, age int) decimal.Decimal {
	if age >= 60 {
		return decimal.Zero
	}
	return cappedWages(wages).Mul(socsoRate).Round(2)
}

// eis is the Employment Insurance System employee share.
func eis(wages decimal.Decimal, age int) decimal.Decimal {
	if age >= 60 {
		return decimal.Zero
	}
	return cappedWages(wages).Mul(eisRate).Round(2)
}

func cappedWages(wages decimal.Decimal) decimal.Decimal {
	if wages.GreaterThan(contributionCap) {
		return contributionCap
	}
	return wages
}

// Resident progressive tax bands (upper bound of band, rate). The final band
// is open-ended.
var taxBands = []struct {
	upTo decimal.Decimal
	rate decimal.Decimal
}{
	{decimal.NewFromInt(5000), decimal.Zero},
	{decimal.NewFromInt(20000), decimal.NewFromFloat(0.01)},
	{decimal.NewFromInt(35000), decimal.NewFromFloat(0.03)},
	{decimal.NewFromInt(50000), decimal.NewFromFloat(0.06)},
	{decimal.NewFromInt(70000), decimal.NewFromFloat(0.11)},
	{decimal.NewFromInt(100000), decimal.NewFromFloat(0.19)},
	{decimal.NewFromInt(400000), decimal.NewFromFloat(0.25)},
	{decimal.NewFromInt(600000), decimal.NewFromFloat(0.26)},
	{decimal.NewFromInt(2000000), decimal.NewFromFloat(0.28)},
}

var topRate = decimal.NewFromFloat(0.30)

var (
	personalRelief = decimal.NewFromInt(9000)
	spouseRelief   = decimal.NewFromInt(4000)
	childRelief    = decimal.NewFromInt(2000)
	epfReliefCap   = decimal.NewFromInt(4000)
)

// pcb annualises the month's pay, applies the standard reliefs and the
// progressive bands, then divides back to a monthly deduction.
func pcb(in Input, wages decimal.Decimal) decimal.Decimal {
	annual := wages.Mul(decimal.NewFromInt(12))

	reliefs := personalRelief
	if in.MaritalStatus == "married" && !in.SpouseWorking {
		reliefs = reliefs.Add(spouseRelief)
	}
	if in.ChildrenCount > 0 {
		reliefs = reliefs.Add(childRelief.Mul(decimal.NewFromInt(int64(in.ChildrenCount))))
	}
	annualEPF := epf(wages, in.Age).Mul(decimal.NewFromInt(12))
	if annualEPF.GreaterThan(epfReliefCap) {
		annualEPF = epfReliefCap
	}
	reliefs = reliefs.Add(annualEPF)

	chargeable := annual.Sub(reliefs)
	if chargeable.Sign() <= 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, band := range taxBands {
		if chargeable.LessThanOrEqual(lower) {
			break
		}
		upper := band.upTo
		slice := minDecimal(chargeable, upper).Sub(lower)
		if slice.Sign() > 0 {
			tax = tax.Add(slice.Mul(band.rate))
		}
		lower = upper
	}
	if chargeable.GreaterThan(lower) {
		tax = tax.Add(chargeable.Sub(lower).Mul(topRate))
	}

	monthly := tax.Div(decimal.NewFromInt(12)).Round(2)
	// PCB below RM 10 per month is not deducted.
	if monthly.LessThan(decimal.NewFromInt(10)) {
		return decimal.Zero
	}
	return monthly
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
