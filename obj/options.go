package obj

type options struct {
	flipV        bool
	weld         bool
	writeNormals bool
}

// Option configures Import and Export.
type Option func(*options)

func applyOptions(optFns []Option) options {
	opts := options{
		weld:         true,
		writeNormals: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// WithFlipV mirrors texture coordinates vertically (v' = 1 - v) on import
// and export, for consumers with a top-left UV origin.
func WithFlipV(flip bool) Option {
	return func(o *options) {
		o.flipV = flip
	}
}

// WithWeld controls whether corners with identical v/vt/vn indices share a
// vertex instance on import. Enabled by default.
func WithWeld(weld bool) Option {
	return func(o *options) {
		o.weld = weld
	}
}

// WithNormals controls whether Export writes vn statements. Enabled by default.
func WithNormals(write bool) Option {
	return func(o *options) {
		o.writeNormals = write
	}
}
