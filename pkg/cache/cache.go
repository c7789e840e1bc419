// Package cache provides pluggable caching for the plotting pipeline.
//
// Three implementations exist:
//   - FileCache: file-based cache for CLI usage (XDG cache dir)
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op cache for tests and --no-cache runs
//
// Keys are generated by a [Keyer], which hashes the inputs of each
// pipeline stage so a change in any option invalidates exactly the stages
// it affects.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached artifact class. Layouts and figures are pure
// functions of their inputs and could live forever; the TTLs bound disk
// usage instead of correctness.
const (
	// TTLLayout applies to computed node positions.
	TTLLayout = 30 * 24 * time.Hour

	// TTLFigure applies to assembled figure JSON documents.
	TTLFigure = 30 * 24 * time.Hour

	// TTLArtifact applies to rendered outputs (HTML, SVG, PNG).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTLs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts carries the inputs that determine computed positions.
type LayoutKeyOpts struct {
	Layout     string
	Seed       uint64
	Iterations int
}

// FigureKeyOpts carries the display inputs that determine the assembled
// figure beyond the layout itself.
type FigureKeyOpts struct {
	Title          string
	TitleFontSize  float64
	Sizing         string
	Coloring       string
	NodeText       []string
	ShowEdgeText   bool
	ShowLegend     bool
	AnnotationText string
	Colorscale     string
	ColorbarTitle  string
}

// ArtifactKeyOpts carries the inputs that determine a rendered output.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey keys computed positions by the graph content hash and the
	// layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// FigureKey keys the assembled figure by the layout hash and the
	// display options.
	FigureKey(layoutHash string, opts FigureKeyOpts) string

	// ArtifactKey keys a rendered output by the figure hash and format.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes each stage's inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// FigureKey generates a key for figure caching.
func (k *DefaultKeyer) FigureKey(layoutHash string, opts FigureKeyOpts) string {
	return hashKey("figure", layoutHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
