package layout

import (
	"sort"

	"github.com/beleglab/bonscan/model"
)

// Grouper is the interface for row clustering algorithms.
type Grouper interface {
	// Group clusters tokens into visual rows. Tokens within each returned
	// row are ordered left to right by their left edge.
	Group(tokens []model.Token) []model.Row

	// Name returns the grouper name.
	Name() string
}

// Config holds configuration for the greedy grouper.
type Config struct {
	// RowOverlapThreshold is the minimum vertical-overlap ratio between a
	// token and a row's aggregate bounding box for the token to join the
	// row (default: 0.45).
	RowOverlapThreshold float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		RowOverlapThreshold: 0.45,
	}
}

// GreedyGrouper clusters tokens into rows with a single greedy pass.
//
// Tokens are sorted by (top edge, left edge) and each is assigned to the
// first existing row whose aggregate bounding box overlaps it vertically by
// at least the threshold, otherwise a new row is opened. The result is
// deterministic given the sort but order-dependent: a row's bounding box
// grows as tokens are added, so a token can be absorbed into a row whose
// extent no longer matches its original physical position. This is an
// accepted approximation, not a bug.
type GreedyGrouper struct {
	config Config
}

// NewGreedyGrouper creates a greedy grouper with default configuration.
func NewGreedyGrouper() *GreedyGrouper {
	return &GreedyGrouper{config: DefaultConfig()}
}

// NewGreedyGrouperWithConfig creates a greedy grouper with custom configuration.
func NewGreedyGrouperWithConfig(config Config) *GreedyGrouper {
	return &GreedyGrouper{config: config}
}

// Name returns the grouper name.
func (g *GreedyGrouper) Name() string {
	return "greedy"
}

// Group clusters tokens into visual rows. The input slice is not modified.
// Rows come back in creation order, which approximates but does not
// guarantee top-to-bottom order.
func (g *GreedyGrouper) Group(tokens []model.Token) []model.Row {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]model.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Box.Y1 != sorted[j].Box.Y1 {
			return sorted[i].Box.Y1 < sorted[j].Box.Y1
		}
		return sorted[i].Box.X1 < sorted[j].Box.X1
	})

	var rows []model.Row
	var bounds []model.Box

	for _, tok := range sorted {
		placed := false
		for i := range rows {
			if tok.Box.VerticalOverlapRatio(bounds[i]) >= g.config.RowOverlapThreshold {
				rows[i] = append(rows[i], tok)
				bounds[i] = bounds[i].Union(tok.Box)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, model.Row{tok})
			bounds = append(bounds, tok.Box)
		}
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Box.X1 < row[j].Box.X1
		})
	}

	return rows
}

// GrouperRegistry holds registered groupers.
type GrouperRegistry struct {
	groupers map[string]Grouper
}

// NewRegistry creates a new grouper registry.
func NewRegistry() *GrouperRegistry {
	return &GrouperRegistry{
		groupers: make(map[string]Grouper),
	}
}

// Register registers a grouper.
func (r *GrouperRegistry) Register(grouper Grouper) {
	r.groupers[grouper.Name()] = grouper
}

// Get retrieves a grouper by name.
func (r *GrouperRegistry) Get(name string) Grouper {
	return r.groupers[name]
}

// List returns all registered grouper names.
func (r *GrouperRegistry) List() []string {
	names := make([]string, 0, len(r.groupers))
	for name := range r.groupers {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// Register registers a grouper globally.
func Register(grouper Grouper) {
	globalRegistry.Register(grouper)
}

// Get retrieves a globally registered grouper by name.
func Get(name string) Grouper {
	return globalRegistry.Get(name)
}

// List returns all globally registered grouper names.
func List() []string {
	return globalRegistry.List()
}

func init() {
	// Register default grouper
	Register(NewGreedyGrouper())
}
