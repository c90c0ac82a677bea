package main

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrLoopClosed is returned by Dispatch once the loop has stopped
	ErrLoopClosed = errors.New("event loop closed")
	// ErrCommandPanicked is returned for a command that panicked; the loop keeps running
	ErrCommandPanicked = errors.New("command panicked")
)

// Command is one UI action applied on the event loop
type Command interface {
	Apply(v *Visualizer) error
}

// AddScenario adds a default scenario and its panel
type AddScenario struct{}

func (AddScenario) Apply(v *Visualizer) error {
	_, err := v.AddPanel()
	return err
}

// UpdateScenario applies panel text to one scenario
type UpdateScenario struct {
	ID     uuid.UUID
	Fields PanelFields
}

func (c UpdateScenario) Apply(v *Visualizer) error {
	return v.UpdatePanel(c.ID, c.Fields)
}

// RemoveScenario removes one scenario and its panel
type RemoveScenario struct {
	ID uuid.UUID
}

func (c RemoveScenario) Apply(v *Visualizer) error {
	return v.RemovePanel(c.ID)
}

// Refresh redraws the chart without changing anything
type Refresh struct{}

func (Refresh) Apply(v *Visualizer) error {
	return v.Redraw()
}

// Query reads the current view
type Query struct{}

func (Query) Apply(*Visualizer) error { return nil }

type request struct {
	cmd   Command
	reply chan result
}

type result struct {
	view View
	err  error
}

// EventLoop serialises all UI actions onto one goroutine, which alone touches the Visualizer
type EventLoop struct {
	vis      *Visualizer
	requests chan request
	done     chan struct{}
	once     sync.Once
	log      *logrus.Logger
}

// NewEventLoop wraps v; call Run to start processing
func NewEventLoop(v *Visualizer, logger *logrus.Logger) *EventLoop {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EventLoop{
		vis:      v,
		requests: make(chan request),
		done:     make(chan struct{}),
		log:      logger,
	}
}

// Run processes commands until ctx is cancelled or Close is called
func (l *EventLoop) Run(ctx context.Context) {
	defer l.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case req := <-l.requests:
			err := l.apply(req.cmd)
			if err != nil {
				l.log.Debugf("command %T failed: %v", req.cmd, err)
			}
			// reply is buffered so an abandoned Dispatch never blocks the loop
			req.reply <- result{view: l.vis.View(), err: err}
		}
	}
}

// apply runs cmd, turning a panic into an error
func (l *EventLoop) apply(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("command", fmt.Sprintf("%T", cmd)).Errorf("command panicked: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("%T: %v: %w", cmd, r, ErrCommandPanicked)
		}
	}()
	return cmd.Apply(l.vis)
}

// Dispatch runs cmd on the loop and returns the resulting view.
// The view is returned even when the command fails, so the UI can show the error state.
func (l *EventLoop) Dispatch(ctx context.Context, cmd Command) (View, error) {
	select {
	case <-l.done:
		return View{}, ErrLoopClosed
	default:
	}
	req := request{cmd: cmd, reply: make(chan result, 1)}
	select {
	case <-l.done:
		return View{}, ErrLoopClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	case l.requests <- req:
	}
	select {
	case res := <-req.reply:
		return res.view, res.err
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Close stops the loop; pending and later dispatches fail with ErrLoopClosed
func (l *EventLoop) Close() {
	l.once.Do(func() { close(l.done) })
}
