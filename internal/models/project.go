package models

import (
	"time"

	"github.com/Augustnerdaal/REALestate/internal/finance"
)

// Project is a named input kept in the project list
type Project struct {
	ID        string        `json:"id"`
	Input     finance.Input `json:"input"`
	Scenarios []Scenario    `json:"scenarios"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Name returns the property name, or a placeholder for unnamed projects
func (p Project) Name() string {
	if p.Input.Name == "" {
		return "Property"
	}
	return p.Input.Name
}

// Scenario is a saved variant of a project's input
type Scenario struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"` // S1, S2, ...
	Input     finance.Input `json:"input"`
	KPIs      finance.KPIs  `json:"kpis"`
	CreatedAt time.Time     `json:"created_at"`
}

// ScenarioComparison represents a scenario evaluated against its base
type ScenarioComparison struct {
	Base     finance.KPIs          `json:"base"`
	Scenario finance.KPIs          `json:"scenario"`
	Input    finance.Input         `json:"input"`
	Delta    KPIDelta              `json:"delta"`
	Ranges   []finance.SliderRange `json:"ranges"`
}

// KPIDelta holds scenario minus base for the figures compared side by side
type KPIDelta struct {
	NOI              float64 `json:"noi"`
	CashFlowAfterTax float64 `json:"cash_flow_after_tax"`
	ROI              float64 `json:"roi"`
	CapRate          float64 `json:"cap_rate"`
	LTV              float64 `json:"ltv"`
	BreakEvenRent    float64 `json:"break_even_rent"`
}

// ReferenceRate represents the suggested loan rate derived from the policy rate
type ReferenceRate struct {
	Source           string    `json:"source"`
	PolicyRatePct    float64   `json:"policy_rate_pct"`
	MarginPct        float64   `json:"margin_pct"`
	SuggestedRatePct float64   `json:"suggested_rate_pct"`
	FetchedAt        time.Time `json:"fetched_at"`
}
