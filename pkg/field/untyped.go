package field

import (
	"slices"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/validation"
)

// Untyped is the value-type-erased handle sections and forms use to address
// heterogeneous fields by id. Only this package implements it.
type Untyped interface {
	ID() string
	Name() string
	// ReadOnly reports whether the field rejects writes (calculated fields).
	ReadOnly() bool
	// AnyValue returns the current value, or nil when the field is empty.
	AnyValue() any
	// Zero returns the zero value of the field's value type. Callers use it
	// to pick an input kind without reflection.
	Zero() any
	// SetAny writes value (nil clears the field). It returns ErrValueType
	// when value has the wrong type and ErrReadOnly for calculated fields.
	SetAny(value any) error
	// Equal reports whether value matches the current value. nil matches an
	// empty field.
	Equal(value any) bool
	State() State
	HandleEvent(event Event)
	ValidatesWhen() Timing
	SetValidatesWhen(timing Timing)
	Validate() []validation.Error
	LastValidationErrors() []validation.Error
	OnValidate(fn func([]validation.Error))
	// ObserveAny registers an untyped value observer and returns a function
	// that removes it.
	ObserveAny(fn func(value any)) (cancel func())
	Graph() *Graph
	SetLogger(logger *zap.SugaredLogger)

	base() *meta
}

// Typed is an Untyped field with value type V. Both Field and Calculated
// implement it, so either can be the source of a dependency.
type Typed[V comparable] interface {
	Untyped
	Value() (V, bool)
	Ptr() *V
	OnValueChanged(fn func(value *V))

	addValidator(v validation.Validator[V])
}

// Same reports whether a and b denote the same field. Field identity is the id.
func Same(a, b Untyped) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

type derivedNode interface {
	notifyDerived()
}

type anyObserver struct {
	token int
	fn    func(any)
}

// meta holds the state every field variant shares regardless of value type.
type meta struct {
	id         string
	name       string
	graph      *Graph
	machine    *Machine
	timing     Timing
	lastErrors []validation.Error
	onValidate func([]validation.Error)
	observers  []anyObserver
	nextToken  int
	logger     *zap.SugaredLogger
}

func (m *meta) setup(self Untyped, id, name string) {
	m.id = id
	m.name = name
	m.timing = ValidateOnRequest
	m.logger = zap.NewNop().Sugar()
	m.machine = NewMachine(id, m.logger)
	m.graph = newGraph(self)
}

func (m *meta) base() *meta { return m }

func (m *meta) ID() string { return m.id }

func (m *meta) Name() string { return m.name }

func (m *meta) State() State { return m.machine.Current() }

func (m *meta) ValidatesWhen() Timing { return m.timing }

func (m *meta) SetValidatesWhen(timing Timing) {
	if timing == "" {
		timing = ValidateOnRequest
	}
	m.timing = timing
}

// LastValidationErrors returns the result of the most recent validation.
// Reading it never triggers validation.
func (m *meta) LastValidationErrors() []validation.Error {
	return slices.Clone(m.lastErrors)
}

func (m *meta) OnValidate(fn func([]validation.Error)) {
	m.onValidate = fn
}

func (m *meta) ObserveAny(fn func(value any)) func() {
	if fn == nil {
		return func() {}
	}
	m.nextToken++
	token := m.nextToken
	m.observers = append(m.observers, anyObserver{token: token, fn: fn})
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(o anyObserver) bool {
			return o.token == token
		})
	}
}

func (m *meta) notifyAny(value any) {
	for _, o := range slices.Clone(m.observers) {
		o.fn(value)
	}
}

func (m *meta) Graph() *Graph { return m.graph }

// SetLogger replaces the field logger and the logger of the graph it belongs
// to. A nil logger is ignored.
func (m *meta) SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		return
	}
	m.logger = logger
	m.machine.setLogger(logger)
	m.graph.SetLogger(logger)
}
