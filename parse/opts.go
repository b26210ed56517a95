package parse

type parseOpts struct {
	prune     bool
	fragments bool
}

type Option func(*parseOpts)

// WithoutPruning keeps empty leaves and childless containers in the
// parsed tree.
func WithoutPruning() Option {
	return func(o *parseOpts) { o.prune = false }
}

// WithoutFragments skips fragment extraction, leaving fragment markers
// as plain leaf content.
func WithoutFragments() Option {
	return func(o *parseOpts) { o.fragments = false }
}
