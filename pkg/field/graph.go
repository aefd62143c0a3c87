package field

import (
	"slices"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds nested propagation caused by observers that write to
// fields while a write is still settling.
const DefaultMaxDepth = 16

// Graph owns the dependency edges between fields, keyed by field id. Every
// field starts in a graph of its own; registering a dependency or a derived
// field merges the graphs involved.
//
// Validation edges may form cycles: dependency-triggered validation never
// writes values, so a write validates each dependent once and stops.
// Re-entrant writes are bounded by the depth cap.
type Graph struct {
	nodes      map[string]Untyped
	validation map[string][]string
	value      map[string][]string
	depth      int
	maxDepth   int
	logger     *zap.SugaredLogger
}

func newGraph(root Untyped) *Graph {
	g := &Graph{
		nodes:      make(map[string]Untyped),
		validation: make(map[string][]string),
		value:      make(map[string][]string),
		maxDepth:   DefaultMaxDepth,
		logger:     zap.NewNop().Sugar(),
	}
	if root != nil {
		g.nodes[root.ID()] = root
	}
	return g
}

// SetLogger replaces the graph logger. A nil logger is ignored.
func (g *Graph) SetLogger(logger *zap.SugaredLogger) {
	if g != nil && logger != nil {
		g.logger = logger
	}
}

// SetMaxDepth changes the re-entrant write cap. Values below 1 are ignored.
func (g *Graph) SetMaxDepth(depth int) {
	if g != nil && depth > 0 {
		g.maxDepth = depth
	}
}

// Len reports how many fields the graph links.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Node returns the field registered under id.
func (g *Graph) Node(id string) (Untyped, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.nodes[id]
	return n, ok
}

// ValidationDependents lists, in registration order, the ids of fields that
// revalidate when id changes.
func (g *Graph) ValidationDependents(id string) []string {
	if g == nil {
		return nil
	}
	return slices.Clone(g.validation[id])
}

// ValueDependents lists the ids of calculated fields that read id.
func (g *Graph) ValueDependents(id string) []string {
	if g == nil {
		return nil
	}
	return slices.Clone(g.value[id])
}

// checkLink reports ErrDuplicateID when merging the graphs of fields would
// put two distinct fields under one id. It changes nothing, so constructors
// linking several fields call it before the first merge.
func checkLink(fields ...Untyped) error {
	seen := make(map[*Graph]struct{}, len(fields))
	ids := make(map[string]Untyped)
	for _, f := range fields {
		g := f.base().graph
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		for id, n := range g.nodes {
			if existing, ok := ids[id]; ok && existing != n {
				return &UsageError{Op: "link", ID: id, Err: ErrDuplicateID}
			}
			ids[id] = n
		}
	}
	return nil
}

// link places a and b in the same graph, merging the smaller graph into the
// larger one.
func link(a, b Untyped) error {
	ga, gb := a.base().graph, b.base().graph
	if ga == gb {
		if existing, ok := ga.nodes[b.ID()]; ok && existing != b {
			return &UsageError{Op: "link", ID: b.ID(), Err: ErrDuplicateID}
		}
		return nil
	}
	dst, src := ga, gb
	if len(src.nodes) > len(dst.nodes) {
		dst, src = src, dst
	}
	for id, n := range src.nodes {
		if existing, ok := dst.nodes[id]; ok && existing != n {
			return &UsageError{Op: "link", ID: id, Err: ErrDuplicateID}
		}
	}
	for id, n := range src.nodes {
		dst.nodes[id] = n
		n.base().graph = dst
	}
	for from, targets := range src.validation {
		for _, to := range targets {
			dst.addValidationEdge(from, to)
		}
	}
	for from, targets := range src.value {
		for _, to := range targets {
			dst.addValueEdge(from, to)
		}
	}
	dst.logger.Debugw("field: graphs merged", "fields", len(dst.nodes))
	return nil
}

func (g *Graph) addValidationEdge(from, to string) {
	if from == to || slices.Contains(g.validation[from], to) {
		return
	}
	g.validation[from] = append(g.validation[from], to)
}

func (g *Graph) addValueEdge(from, to string) {
	if from == to || slices.Contains(g.value[from], to) {
		return
	}
	g.value[from] = append(g.value[from], to)
}

// enter marks the start of a write settling on the graph. It reports false
// when the depth cap is reached, in which case the caller must skip every
// side effect of the write.
func (g *Graph) enter(id string) bool {
	if g.depth >= g.maxDepth {
		g.logger.Warnw("field: propagation depth exceeded, skipping side effects", "field", id, "maxDepth", g.maxDepth)
		return false
	}
	g.depth++
	return true
}

func (g *Graph) leave() {
	if g.depth > 0 {
		g.depth--
	}
}

// propagate notifies calculated fields that transitively read source, then
// validates every field depending on source or on one of those calculated
// fields. Each dependent is validated exactly once.
func (g *Graph) propagate(source string) {
	derived := g.derivedFrom(source)
	for _, id := range derived {
		if n, ok := g.nodes[id].(derivedNode); ok {
			n.notifyDerived()
		}
	}

	seen := make(map[string]struct{})
	var targets []string
	for _, from := range append([]string{source}, derived...) {
		for _, to := range g.validation[from] {
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			targets = append(targets, to)
		}
	}

	if len(targets) > 0 {
		g.logger.Debugw("field: revalidating dependents", "source", source, "dependents", targets)
	}
	for _, id := range targets {
		if n, ok := g.nodes[id]; ok {
			n.Validate()
		}
	}
}

func (g *Graph) derivedFrom(source string) []string {
	var out []string
	seen := map[string]struct{}{source: {}}
	queue := slices.Clone(g.value[source])
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		queue = append(queue, g.value[id]...)
	}
	return out
}
