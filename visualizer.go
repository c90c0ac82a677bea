package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Visualizer is the application state behind the window: the chart and one panel per scenario
type Visualizer struct {
	manager  *ChartManager
	panels   []*Panel
	defaults Params
	log      *logrus.Logger
}

// View is an immutable copy of everything the UI shows
type View struct {
	Panels []PanelView `json:"panels"`
	Chart  Snapshot    `json:"chart"`
}

// NewVisualizer creates an empty visualizer; new panels start from defaults
func NewVisualizer(manager *ChartManager, defaults Params, logger *logrus.Logger) (*Visualizer, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("default scenario: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Visualizer{manager: manager, defaults: defaults, log: logger}, nil
}

// AddPanel adds a scenario with default parameters and its input panel
func (v *Visualizer) AddPanel() (*Panel, error) {
	return v.AddPanelWith(v.defaults)
}

// AddPanelWith adds a scenario with the given parameters and its input panel
func (v *Visualizer) AddPanelWith(p Params) (*Panel, error) {
	s, err := NewScenario(p)
	if err != nil {
		return nil, err
	}
	if err := v.manager.Add(s); err != nil {
		return nil, err
	}
	panel := newPanel(s, v.manager)
	v.panels = append(v.panels, panel)
	v.log.WithField("scenario", s.ID).Info("scenario panel added")
	return panel, nil
}

// UpdatePanel applies new input text to the panel of scenario id
func (v *Visualizer) UpdatePanel(id uuid.UUID, fields PanelFields) error {
	panel, _ := v.find(id)
	if panel == nil {
		return fmt.Errorf("update %s: %w", id, ErrScenarioNotFound)
	}
	if err := panel.Update(fields); err != nil {
		v.log.WithFields(logrus.Fields{"scenario": id, "field": errorField(err)}).Warnf("update rejected: %v", err)
		return err
	}
	v.log.WithField("scenario", id).Info("scenario updated")
	return nil
}

// RemovePanel detaches scenario id from the chart and discards its panel
func (v *Visualizer) RemovePanel(id uuid.UUID) error {
	panel, idx := v.find(id)
	if panel == nil {
		return fmt.Errorf("remove %s: %w", id, ErrScenarioNotFound)
	}
	err := panel.Remove()
	if err != nil && !errors.Is(err, ErrScenarioNotFound) {
		return err
	}
	// a panel whose scenario is already off the chart is stale either way
	v.panels = append(v.panels[:idx], v.panels[idx+1:]...)
	if err != nil {
		v.log.WithField("scenario", id).Warnf("removed stale panel: %v", err)
		return err
	}
	v.log.WithField("scenario", id).Info("scenario panel removed")
	return nil
}

// Redraw repaints the chart without changing any scenario
func (v *Visualizer) Redraw() error {
	return v.manager.Redraw()
}

// Panels returns the panels in display order
func (v *Visualizer) Panels() []*Panel {
	out := make([]*Panel, len(v.panels))
	copy(out, v.panels)
	return out
}

// View copies the current UI state
func (v *Visualizer) View() View {
	view := View{Panels: make([]PanelView, 0, len(v.panels)), Chart: v.manager.Snapshot()}
	for _, p := range v.panels {
		view.Panels = append(view.Panels, p.view())
	}
	return view
}

func (v *Visualizer) find(id uuid.UUID) (*Panel, int) {
	for i, p := range v.panels {
		if p.ID() == id {
			return p, i
		}
	}
	return nil, -1
}
