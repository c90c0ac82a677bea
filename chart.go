package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Chart text
const (
	ChartTitle  = "Compound Interest Over Time"
	ChartXLabel = "Years"
	ChartYLabel = "Investment Value"
)

var (
	// ErrScenarioNotFound is returned when a scenario is not in the active set
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrScenarioBound is returned when adding a scenario that already belongs to a manager
	ErrScenarioBound = errors.New("scenario already on a chart")
)

// Surface is the shared chart canvas every scenario draws into.
// Redraw drives it in a fixed order: Clear, SetLabels, Plot per scenario,
// EnableInspection, DrawLegend, Repaint.
type Surface interface {
	Clear()
	SetLabels(title, xLabel, yLabel string)
	Plot(key, label string, points []Point)
	EnableInspection()
	DrawLegend()
	Repaint() error
	Snapshot() Snapshot
}

// ChartManager owns the active set of scenarios and the surface they are drawn on
type ChartManager struct {
	surface   Surface
	scenarios []*Scenario
	redraws   int
	log       *logrus.Logger
}

// NewChartManager creates a manager drawing into surface
func NewChartManager(surface Surface, logger *logrus.Logger) *ChartManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ChartManager{surface: surface, log: logger}
}

// Add appends a scenario to the active set and redraws.
// If the redraw fails the scenario is taken back out and stays unbound.
func (m *ChartManager) Add(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("add scenario: %w", ErrScenarioNotFound)
	}
	if s.manager != nil {
		return fmt.Errorf("add scenario %s: %w", s.ID, ErrScenarioBound)
	}
	prev := m.scenarios
	s.manager = m
	m.scenarios = append(m.scenarios[:len(prev):len(prev)], s)
	if err := m.Redraw(); err != nil {
		m.scenarios = prev
		s.manager = nil
		return fmt.Errorf("add scenario %s: %w", s.ID, err)
	}
	m.log.WithFields(logrus.Fields{"scenario": s.ID, "scenarios": len(m.scenarios)}).Debug("scenario added")
	return nil
}

// Remove takes a scenario out of the active set and redraws.
// A scenario that is not present, or a failed redraw, leaves the set and the chart untouched.
func (m *ChartManager) Remove(s *Scenario) error {
	idx := m.indexOf(s)
	if idx < 0 {
		if s != nil {
			m.log.WithField("scenario", s.ID).Warn("remove of scenario not on chart")
			return fmt.Errorf("remove scenario %s: %w", s.ID, ErrScenarioNotFound)
		}
		return fmt.Errorf("remove scenario: %w", ErrScenarioNotFound)
	}
	prev := m.scenarios
	m.scenarios = append(prev[:idx:idx], prev[idx+1:]...)
	if err := m.Redraw(); err != nil {
		m.scenarios = prev
		return fmt.Errorf("remove scenario %s: %w", s.ID, err)
	}
	s.manager = nil
	m.log.WithFields(logrus.Fields{"scenario": s.ID, "scenarios": len(m.scenarios)}).Debug("scenario removed")
	return nil
}

// Update replaces all parameters of a scenario at once and redraws.
// Invalid params or a failed redraw leave the scenario and the chart unchanged.
func (m *ChartManager) Update(s *Scenario, p Params) error {
	if m.indexOf(s) < 0 {
		if s != nil {
			return fmt.Errorf("update scenario %s: %w", s.ID, ErrScenarioNotFound)
		}
		return fmt.Errorf("update scenario: %w", ErrScenarioNotFound)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("update scenario %s: %w", s.ID, err)
	}
	prev := s.params
	s.params = p
	if err := m.Redraw(); err != nil {
		s.params = prev
		return fmt.Errorf("update scenario %s: %w", s.ID, err)
	}
	return nil
}

// Redraw clears the surface and draws every scenario again in insertion order
func (m *ChartManager) Redraw() error {
	m.surface.Clear()
	m.surface.SetLabels(ChartTitle, ChartXLabel, ChartYLabel)
	for _, s := range m.scenarios {
		s.Draw(m.surface)
	}
	m.surface.EnableInspection()
	m.surface.DrawLegend()
	if err := m.surface.Repaint(); err != nil {
		m.log.WithField("redraw", m.redraws+1).Errorf("chart repaint failed: %v", err)
		return fmt.Errorf("redraw chart: %w", err)
	}
	m.redraws++
	return nil
}

// Scenarios returns the active set in draw order
func (m *ChartManager) Scenarios() []*Scenario {
	out := make([]*Scenario, len(m.scenarios))
	copy(out, m.scenarios)
	return out
}

// Len returns the size of the active set
func (m *ChartManager) Len() int {
	return len(m.scenarios)
}

// Lookup finds an active scenario by id
func (m *ChartManager) Lookup(id uuid.UUID) (*Scenario, bool) {
	for _, s := range m.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Redraws counts completed redraw passes
func (m *ChartManager) Redraws() int {
	return m.redraws
}

// Snapshot returns the last painted chart
func (m *ChartManager) Snapshot() Snapshot {
	return m.surface.Snapshot()
}

func (m *ChartManager) indexOf(s *Scenario) int {
	if s == nil {
		return -1
	}
	for i, cur := range m.scenarios {
		if cur == s {
			return i
		}
	}
	return -1
}
