package displaylist

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	// Flat bounds only
//	b := displaylist.NewBuilder()
//
//	// Keep per-op rectangles for culled playback
//	b := displaylist.NewBuilder(displaylist.WithRTree(true))
type BuilderOption func(*builderOptions)

type builderOptions struct {
	rtree bool
	cull  Rect
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{cull: MaxCullRect()}
}

// WithRTree selects the spatial bounds accumulator. The built DisplayList
// then carries an RTree and supports DispatchCulled.
func WithRTree(enabled bool) BuilderOption {
	return func(o *builderOptions) {
		o.rtree = enabled
	}
}

// WithCullRect sets the initial device clip. Ops entirely outside it are
// still recorded but contribute no bounds.
func WithCullRect(cull Rect) BuilderOption {
	return func(o *builderOptions) {
		o.cull = cull
	}
}
