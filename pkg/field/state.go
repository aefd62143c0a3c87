package field

import (
	"context"
	"fmt"
	"strings"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// State is a field's position in the focus/change/blur lifecycle.
type State string

const (
	Untouched State = "untouched"
	Focused   State = "focused"
	Changed   State = "changed"
	Blurred   State = "blurred"
)

// Event drives State transitions.
type Event string

const (
	EventFocus  Event = "focus"
	EventChange Event = "change"
	EventBlur   Event = "blur"
)

// Timing controls when a field validates itself automatically.
type Timing string

const (
	// ValidateOnRequest only validates when Validate is called explicitly.
	ValidateOnRequest Timing = "requested"
	// ValidateOnChange validates on every change event.
	ValidateOnChange Timing = "changed"
	// ValidateOnBlur validates on every blur event.
	ValidateOnBlur Timing = "blurred"
)

// ParseTiming maps a policy name to a Timing. The empty string selects
// ValidateOnRequest.
func ParseTiming(raw string) (Timing, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "requested", "request":
		return ValidateOnRequest, nil
	case "changed", "change":
		return ValidateOnChange, nil
	case "blurred", "blur":
		return ValidateOnBlur, nil
	default:
		return "", fmt.Errorf("field: unknown validation timing %q", raw)
	}
}

// Only state-changing transitions are registered; self-loops and unlisted
// pairs are rejected by Can and treated as no-ops.
var transitions = fsm.Events{
	{Name: string(EventFocus), Src: []string{string(Untouched)}, Dst: string(Focused)},
	{Name: string(EventFocus), Src: []string{string(Blurred)}, Dst: string(Changed)},
	{Name: string(EventChange), Src: []string{string(Untouched)}, Dst: string(Blurred)},
	{Name: string(EventChange), Src: []string{string(Focused)}, Dst: string(Changed)},
	{Name: string(EventBlur), Src: []string{string(Focused)}, Dst: string(Untouched)},
	{Name: string(EventBlur), Src: []string{string(Changed)}, Dst: string(Blurred)},
}

// Machine is the lifecycle automaton shared by every field.
type Machine struct {
	id     string
	fsm    *fsm.FSM
	logger *zap.SugaredLogger
}

// NewMachine returns a machine in the Untouched state. id is only used for
// log context.
func NewMachine(id string, logger *zap.SugaredLogger) *Machine {
	return newMachineAt(id, Untouched, logger)
}

func newMachineAt(id string, initial State, logger *zap.SugaredLogger) *Machine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Machine{
		id:     id,
		fsm:    fsm.NewFSM(string(initial), transitions, fsm.Callbacks{}),
		logger: logger,
	}
}

// Current reports the current state.
func (m *Machine) Current() State {
	return State(m.fsm.Current())
}

// Fire applies event and returns the resulting state and whether it differs
// from the previous one.
func (m *Machine) Fire(event Event) (State, bool) {
	from := m.Current()
	if !m.fsm.Can(string(event)) {
		return from, false
	}
	if err := m.fsm.Event(context.Background(), string(event)); err != nil {
		m.logger.Warnw("field: state transition failed", "field", m.id, "event", event, "state", from, "error", err)
		return from, false
	}
	to := m.Current()
	m.logger.Debugw("field: state transition", "field", m.id, "event", event, "from", from, "to", to)
	return to, to != from
}

func (m *Machine) setLogger(logger *zap.SugaredLogger) {
	if logger != nil {
		m.logger = logger
	}
}

// Next returns the state reached from state on event without touching any
// field.
func Next(state State, event Event) State {
	to, _ := newMachineAt("", state, nil).Fire(event)
	return to
}
