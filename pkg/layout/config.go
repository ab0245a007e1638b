package layout

// TreeConfig controls the tree model geometry and labels.
type TreeConfig struct {
	// DrawLabels shows the conditional probability on every edge.
	// Cumulative leaf annotations are drawn either way.
	DrawLabels bool
	// LevelDistance is the vertical gap between a level and its parent.
	LevelDistance float64
	// SiblingDistances holds the horizontal gap between siblings, one entry
	// per depth starting at the first level. Trees deeper than this table
	// are rejected.
	SiblingDistances []float64
	// AnnotationDistance is how far below a leaf its cumulative probability sits.
	AnnotationDistance float64
}

// DefaultTreeConfig returns the spacing used by the course diagrams.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		DrawLabels:         true,
		LevelDistance:      2.2,
		SiblingDistances:   []float64{6, 3, 1.5, 0.8},
		AnnotationDistance: 1.1,
	}
}

// TreeOption adjusts a TreeConfig.
type TreeOption func(*TreeConfig)

// WithoutLabels suppresses the edge probability labels.
func WithoutLabels() TreeOption {
	return func(c *TreeConfig) {
		c.DrawLabels = false
	}
}

// WithLabels sets whether edge probability labels are drawn.
func WithLabels(draw bool) TreeOption {
	return func(c *TreeConfig) {
		c.DrawLabels = draw
	}
}

// WithLevelDistance sets the vertical gap between levels.
func WithLevelDistance(d float64) TreeOption {
	return func(c *TreeConfig) {
		c.LevelDistance = d
	}
}

// WithSiblingDistances replaces the per-level sibling spacing table.
// Pass a longer table to render deeper trees.
func WithSiblingDistances(distances ...float64) TreeOption {
	return func(c *TreeConfig) {
		c.SiblingDistances = append([]float64(nil), distances...)
	}
}

// NewTreeConfig applies opts on top of DefaultTreeConfig.
func NewTreeConfig(opts ...TreeOption) TreeConfig {
	cfg := DefaultTreeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
