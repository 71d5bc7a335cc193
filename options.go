package sr

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default: GOMAXPROCS workers, black background
//	r := sr.NewRenderer(800, 600)
//
//	// Deterministic single-threaded rendering on a grey background
//	r := sr.NewRenderer(800, 600, sr.WithWorkers(1), sr.WithBackground(sr.Hex("#808080")))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	workers           int
	background        RGBA
	parallelThreshold int
}

// defaultParallelThreshold is the bounding-box area, in pixels, below which
// a triangle is rasterized on the calling goroutine. Handing small triangles
// to the pool costs more than it saves.
const defaultParallelThreshold = 4096

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		workers:           0, // GOMAXPROCS
		background:        Black,
		parallelThreshold: defaultParallelThreshold,
	}
}

// WithWorkers sets the number of goroutines that rasterize a triangle's
// pixels. Zero or negative means GOMAXPROCS; one disables parallelism.
//
// With more than one worker, bound shaders are called concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBackground sets the color Clear fills the color buffer with.
func WithBackground(c RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithParallelThreshold sets the bounding-box area, in pixels, from which a
// triangle is split across workers. Smaller triangles are rasterized
// serially. Values below one are treated as one.
func WithParallelThreshold(pixels int) Option {
	return func(o *options) {
		o.parallelThreshold = max(pixels, 1)
	}
}
