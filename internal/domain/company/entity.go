package company

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Attendance regimes select the derived-totals rules for a company.
const (
	RegimeMimix   = "mimix"
	RegimeAAAlive = "aaalive"
)

// Commission/notifier grouping dimensions.
const (
	GroupByOutlet     = "outlet"
	GroupByDepartment = "department"
)

type Company struct {
	ID                  int64
	Name                string
	Regime              string
	GroupBy             string
	Timezone            string
	ExcludeHolidayNotify bool
	Settings            Settings
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Outlet struct {
	ID           int64
	CompanyID    int64
	Name         string
	SupervisorID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Department struct {
	ID        int64
	CompanyID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PublicHoliday struct {
	ID          int64
	CompanyID   int64
	Name        string
	HolidayDate time.Time
	CreatedAt   time.Time
}

// Settings is the company JSON settings blob. Recognised keys are typed;
// everything else round-trips through Extra for forward compatibility.
type Settings struct {
	SettlementNoticePeriodDays     int
	SettlementIncludeProratedBonus bool
	SettlementLeaveEncashmentRate  decimal.Decimal
	SettlementWorkingDaysPerMonth  int
	IndoorSalesBasic               decimal.Decimal
	IndoorSalesCommissionRate      decimal.Decimal

	Extra map[string]json.RawMessage
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		SettlementNoticePeriodDays:    30,
		SettlementLeaveEncashmentRate: decimal.NewFromInt(1),
		SettlementWorkingDaysPerMonth: 22,
	}
}

var recognisedKeys = map[string]bool{
	"settlement_notice_period_days":     true,
	"settlement_include_prorated_bonus": true,
	"settlement_leave_encashment_rate":  true,
	"settlement_working_days_per_month": true,
	"indoor_sales_basic":                true,
	"indoor_sales_commission_rate":      true,
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	*s = DefaultSettings()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["settlement_notice_period_days"]; ok {
		_ = json.Unmarshal(v, &s.SettlementNoticePeriodDays)
	}
	if v, ok := raw["settlement_include_prorated_bonus"]; ok {
		_ = json.Unmarshal(v, &s.SettlementIncludeProratedBonus)
	}
	if v, ok := raw["settlement_leave_encashment_rate"]; ok {
		_ = json.Unmarshal(v, &s.SettlementLeaveEncashmentRate)
	}
	if v, ok := raw["settlement_working_days_per_month"]; ok {
		_ = json.Unmarshal(v, &s.SettlementWorkingDaysPerMonth)
	}
	if v, ok := raw["indoor_sales_basic"]; ok {
		_ = json.Unmarshal(v, &s.IndoorSalesBasic)
	}
	if v, ok := raw["indoor_sales_commission_rate"]; ok {
		_ = json.Unmarshal(v, &s.IndoorSalesCommissionRate)
	}

	for k, v := range raw {
		if !recognisedKeys[k] {
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			s.Extra[k] = v
		}
	}
	return nil
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Extra)+6)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["settlement_notice_period_days"] = s.SettlementNoticePeriodDays
	out["settlement_include_prorated_bonus"] = s.SettlementIncludeProratedBonus
	out["settlement_leave_encashment_rate"] = s.SettlementLeaveEncashmentRate
	out["settlement_working_days_per_month"] = s.SettlementWorkingDaysPerMonth
	out["indoor_sales_basic"] = s.IndoorSalesBasic
	out["indoor_sales_commission_rate"] = s.IndoorSalesCommissionRate
	return json.Marshal(out)
}

// StandardWorkMinutes returns the regime's standard shift length.
func StandardWorkMinutes(regime string) int {
	if regime == RegimeAAAlive {
		return 540
	}
	return 510
}
