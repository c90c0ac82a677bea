package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// PanelFields is the text of the five inputs, in display order
type PanelFields struct {
	Initial      string `json:"initial"`
	Yearly       string `json:"yearly"`
	AnnualReturn string `json:"annual_return"`
	AgeStarted   string `json:"age_started"`
	MaxAge       string `json:"max_age"`
}

// FieldsFromParams pre-fills the inputs from scenario parameters
func FieldsFromParams(p Params) PanelFields {
	return PanelFields{
		Initial:      formatVerbatim(p.InitialInvestment),
		Yearly:       formatVerbatim(p.YearlyInvestment),
		AnnualReturn: formatVerbatim(p.AnnualReturn),
		AgeStarted:   strconv.Itoa(p.AgeStarted),
		MaxAge:       strconv.Itoa(p.MaxAge),
	}
}

// Parse reads all five inputs with their declared types.
// It stops at the first field that does not parse; invariants are not checked here.
func (f PanelFields) Parse() (Params, error) {
	var p Params
	var err error
	if p.InitialInvestment, err = parseMoney(f.Initial, FieldInitial); err != nil {
		return Params{}, err
	}
	if p.YearlyInvestment, err = parseMoney(f.Yearly, FieldYearly); err != nil {
		return Params{}, err
	}
	if p.AnnualReturn, err = parsePercentOrDecimal(f.AnnualReturn, FieldAnnualReturn); err != nil {
		return Params{}, err
	}
	if p.AgeStarted, err = parseWhole(f.AgeStarted, FieldAgeStarted); err != nil {
		return Params{}, err
	}
	if p.MaxAge, err = parseWhole(f.MaxAge, FieldMaxAge); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Panel is the input row bound to one scenario
type Panel struct {
	scenario *Scenario
	manager  *ChartManager
	fields   PanelFields
	errMsg   string
	errField string
}

func newPanel(s *Scenario, m *ChartManager) *Panel {
	return &Panel{scenario: s, manager: m, fields: FieldsFromParams(s.Params())}
}

// ID is the id of the bound scenario
func (p *Panel) ID() uuid.UUID {
	return p.scenario.ID
}

// Fields returns the text currently shown in the inputs
func (p *Panel) Fields() PanelFields {
	return p.fields
}

// Err returns the inline error from the last action, or ""
func (p *Panel) Err() string {
	return p.errMsg
}

// Update parses the inputs and applies them to the scenario as one change.
// On error the inputs keep the user's text and the scenario is left as it was.
func (p *Panel) Update(fields PanelFields) error {
	p.fields = fields
	params, err := fields.Parse()
	if err == nil {
		err = p.manager.Update(p.scenario, params)
	}
	if err != nil {
		p.errMsg = err.Error()
		p.errField = errorField(err)
		if ve, ok := asValidation(err); ok {
			p.errMsg = ve.Message
		}
		return fmt.Errorf("update panel: %w", err)
	}
	p.errMsg, p.errField = "", ""
	p.fields = FieldsFromParams(p.scenario.Params())
	return nil
}

// Remove detaches the scenario from the chart
func (p *Panel) Remove() error {
	if err := p.manager.Remove(p.scenario); err != nil {
		return fmt.Errorf("remove panel: %w", err)
	}
	return nil
}

// PanelView is the read-only state of a panel for the UI
type PanelView struct {
	ID         string      `json:"id"`
	Fields     PanelFields `json:"fields"`
	Error      string      `json:"error,omitempty"`
	ErrorField string      `json:"error_field,omitempty"`
	Label      string      `json:"label"`
}

func (p *Panel) view() PanelView {
	return PanelView{
		ID:         p.scenario.ID.String(),
		Fields:     p.fields,
		Error:      p.errMsg,
		ErrorField: p.errField,
		Label:      p.scenario.Label(),
	}
}
