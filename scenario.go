package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Params holds one investment plan
type Params struct {
	InitialInvestment float64 `yaml:"initial_investment" json:"initial_investment"`
	YearlyInvestment  float64 `yaml:"yearly_investment" json:"yearly_investment"`
	AnnualReturn      float64 `yaml:"annual_return" json:"annual_return"` // decimal, 0.08 = 8%
	AgeStarted        int     `yaml:"age_started" json:"age_started"`
	MaxAge            int     `yaml:"max_age" json:"max_age"` // exclusive upper bound of the plotted ages
}

// DefaultParams are the parameters of a freshly added scenario
func DefaultParams() Params {
	return Params{
		InitialInvestment: 5000,
		YearlyInvestment:  0,
		AnnualReturn:      0.08,
		AgeStarted:        22,
		MaxAge:            67,
	}
}

// Validate checks the scenario invariants in panel order and returns the first violation
func (p Params) Validate() error {
	if err := validateMoney(p.InitialInvestment, FieldInitial); err != nil {
		return err
	}
	if err := validateMoney(p.YearlyInvestment, FieldYearly); err != nil {
		return err
	}
	if err := validateReturnRate(p.AnnualReturn); err != nil {
		return err
	}
	if err := validateAgeRange(p.AgeStarted, p.MaxAge); err != nil {
		return err
	}
	return validateFinalValue(FutureValue(p, p.MaxAge-p.AgeStarted-1))
}

// Point is one plotted (age, value) pair
type Point struct {
	Age   int     `json:"age"`
	Value float64 `json:"value"`
}

// FutureValue is the value after the given number of whole years:
// the initial sum compounded annually plus a year-end annuity of the yearly contribution.
//
//	V = P0 × (1 + r)^n + C × ((1 + r)^n - 1) / r
func FutureValue(p Params, years int) float64 {
	growth := math.Pow(1+p.AnnualReturn, float64(years))
	annuity := 0.0
	if p.YearlyInvestment != 0 {
		annuity = p.YearlyInvestment * ((growth - 1) / p.AnnualReturn)
	}
	return p.InitialInvestment*growth + annuity
}

// Series returns one point per age in [AgeStarted, MaxAge).
// Params that break the invariants give no points.
func (p Params) Series() []Point {
	if p.Validate() != nil {
		return nil
	}
	points := make([]Point, 0, p.MaxAge-p.AgeStarted)
	for age := p.AgeStarted; age < p.MaxAge; age++ {
		points = append(points, Point{Age: age, Value: FutureValue(p, age-p.AgeStarted)})
	}
	return points
}

// Label identifies the curve in the legend using every parameter as entered
func (p Params) Label() string {
	return fmt.Sprintf("Init: %s, Recurrent: %s, Return: %s, Age started: %d, Max age: %d",
		formatVerbatim(p.InitialInvestment),
		formatVerbatim(p.YearlyInvestment),
		formatVerbatim(p.AnnualReturn),
		p.AgeStarted, p.MaxAge)
}

// formatVerbatim prints the shortest decimal that round-trips, without exponent
func formatVerbatim(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

// Scenario is one plan on the chart. It belongs to at most one ChartManager.
type Scenario struct {
	ID      uuid.UUID
	params  Params
	manager *ChartManager
}

// NewScenario validates params and returns an unbound scenario
func NewScenario(p Params) (*Scenario, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("new scenario: %w", err)
	}
	return &Scenario{ID: uuid.New(), params: p}, nil
}

// Params returns a copy of the current parameters
func (s *Scenario) Params() Params {
	return s.params
}

// Series returns the scenario's curve
func (s *Scenario) Series() []Point {
	return s.params.Series()
}

// Label returns the legend text
func (s *Scenario) Label() string {
	return s.params.Label()
}

// Draw plots the scenario's curve into the shared surface
func (s *Scenario) Draw(surface Surface) {
	surface.Plot(s.ID.String(), s.Label(), s.Series())
}
