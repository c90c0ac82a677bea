package main

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestVisualizer(t *testing.T) (*Visualizer, *ChartManager, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	m := NewChartManager(&recordingSurface{}, logger)
	v, err := NewVisualizer(m, DefaultParams(), logger)
	if err != nil {
		t.Fatalf("NewVisualizer: %v", err)
	}
	return v, m, hook
}

func TestNewVisualizer_RejectsInvalidDefaults(t *testing.T) {
	p := DefaultParams()
	p.AnnualReturn = 0
	_, err := NewVisualizer(NewChartManager(&recordingSurface{}, quietLogger()), p, quietLogger())
	if !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("expected ErrInvalidScenario, got %v", err)
	}
}

func TestVisualizer_AddPanelUsesDefaults(t *testing.T) {
	v, m, _ := newTestVisualizer(t)

	panel, err := v.AddPanel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if panel.Fields() != defaultFields() {
		t.Errorf("expected default inputs, got %+v", panel.Fields())
	}
	if m.Len() != 1 || len(v.Panels()) != 1 {
		t.Errorf("expected one scenario and one panel, got %d and %d", m.Len(), len(v.Panels()))
	}

	view := v.View()
	if len(view.Panels) != 1 || view.Panels[0].ID != panel.ID().String() {
		t.Errorf("unexpected view %+v", view.Panels)
	}
	if len(view.Chart.Legend) != 1 {
		t.Errorf("expected one legend entry, got %v", view.Chart.Legend)
	}
}

func TestVisualizer_AddPanelWithInvalidParams(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	p := DefaultParams()
	p.MaxAge = 10

	if _, err := v.AddPanelWith(p); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("expected ErrInvalidScenario, got %v", err)
	}
	if m.Len() != 0 || len(v.Panels()) != 0 {
		t.Error("invalid scenario should not be added")
	}
}

func TestVisualizer_UpdatePanel(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	f := defaultFields()
	f.Initial = "10k"

	if err := v.UpdatePanel(panel.ID(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := m.Lookup(panel.ID())
	if s.Params().InitialInvestment != 10000 {
		t.Errorf("expected 10000, got %v", s.Params().InitialInvestment)
	}
}

func TestVisualizer_UpdatePanelRejectedLogsField(t *testing.T) {
	v, _, hook := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	f := defaultFields()
	f.AnnualReturn = "abc"
	hook.Reset()

	if err := v.UpdatePanel(panel.ID(), f); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %+v", entry)
	}
	if entry.Data["field"] != FieldAnnualReturn {
		t.Errorf("expected field %q logged, got %v", FieldAnnualReturn, entry.Data["field"])
	}
	if v.View().Panels[0].ErrorField != FieldAnnualReturn {
		t.Errorf("panel should show the error inline")
	}
}

func TestVisualizer_UpdateUnknownPanel(t *testing.T) {
	v, _, _ := newTestVisualizer(t)
	if err := v.UpdatePanel(uuid.New(), defaultFields()); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestVisualizer_RemovePanel(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	first, _ := v.AddPanel()
	second, _ := v.AddPanel()

	if err := v.RemovePanel(first.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	panels := v.Panels()
	if len(panels) != 1 || panels[0] != second {
		t.Errorf("expected only the second panel left, got %d panels", len(panels))
	}
	if m.Len() != 1 {
		t.Errorf("expected one scenario, got %d", m.Len())
	}
	if err := v.RemovePanel(first.ID()); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("second remove: expected ErrScenarioNotFound, got %v", err)
	}
}

func TestVisualizer_RemoveStalePanel(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	s, _ := m.Lookup(panel.ID())
	m.Remove(s)
	redraws := m.Redraws()

	err := v.RemovePanel(panel.ID())
	if !errors.Is(err, ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
	if len(v.Panels()) != 0 {
		t.Error("stale panel should be dropped")
	}
	if m.Redraws() != redraws {
		t.Errorf("expected no redraw, got %d", m.Redraws()-redraws)
	}
}

func TestVisualizer_AddAfterRemovingAll(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	v.RemovePanel(panel.ID())

	if _, err := v.AddPanel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("expected one scenario, got %d", m.Len())
	}
}

func TestVisualizer_UpdateWithOverflowingAges(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	redraws := m.Redraws()

	for _, f := range []PanelFields{
		{Initial: "5000", Yearly: "0", AnnualReturn: "8%", AgeStarted: "-9223372036854775808", MaxAge: "1"},
		{Initial: "5000", Yearly: "0", AnnualReturn: "8%", AgeStarted: "0", MaxAge: "1000000000000"},
		{Initial: "1e300", Yearly: "0", AnnualReturn: "0.9", AgeStarted: "0", MaxAge: "150"},
	} {
		if err := v.UpdatePanel(panel.ID(), f); !errors.Is(err, ErrInvalidScenario) {
			t.Errorf("%+v: expected ErrInvalidScenario, got %v", f, err)
		}
	}
	s, _ := m.Lookup(panel.ID())
	if s.Params() != DefaultParams() {
		t.Errorf("params changed to %+v", s.Params())
	}
	if m.Redraws() != redraws {
		t.Errorf("expected no redraw, got %d", m.Redraws()-redraws)
	}
}

func TestVisualizer_RepaintFailureKeepsPanelsAndChartInStep(t *testing.T) {
	v, m, _ := newTestVisualizer(t)
	panel, _ := v.AddPanel()
	surface := m.surface.(*recordingSurface)
	boom := errors.New("boom")

	surface.failNext = boom
	if _, err := v.AddPanel(); !errors.Is(err, boom) {
		t.Fatalf("add: expected repaint error, got %v", err)
	}
	if m.Len() != 1 || len(v.Panels()) != 1 {
		t.Errorf("after failed add: %d scenarios, %d panels", m.Len(), len(v.Panels()))
	}

	surface.failNext = boom
	f := defaultFields()
	f.Yearly = "100"
	if err := v.UpdatePanel(panel.ID(), f); !errors.Is(err, boom) {
		t.Fatalf("update: expected repaint error, got %v", err)
	}
	s, _ := m.Lookup(panel.ID())
	if s.Params() != DefaultParams() {
		t.Errorf("after failed update params are %+v", s.Params())
	}
	if v.View().Panels[0].Error == "" {
		t.Error("failed update should show an inline error")
	}

	surface.failNext = boom
	if err := v.RemovePanel(panel.ID()); !errors.Is(err, boom) {
		t.Fatalf("remove: expected repaint error, got %v", err)
	}
	if m.Len() != 1 || len(v.Panels()) != 1 {
		t.Errorf("after failed remove: %d scenarios, %d panels", m.Len(), len(v.Panels()))
	}

	if err := v.RemovePanel(panel.ID()); err != nil {
		t.Errorf("remove once painting works: %v", err)
	}
	if m.Len() != 0 || len(v.Panels()) != 0 {
		t.Errorf("after remove: %d scenarios, %d panels", m.Len(), len(v.Panels()))
	}
}
