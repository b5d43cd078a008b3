package textexpand

// ExpandOptions holds options for expansion and rendering.
type ExpandOptions struct {
	Config *RenderConfig
	// UTF16 makes carets and ranges count UTF-16 code units instead of
	// bytes, as browser text fields do.
	UTF16 bool
}

// Option is a function that configures ExpandOptions.
type Option func(*ExpandOptions)

// WithConfig sets a custom RenderConfig. Invalid fields fall back to defaults.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ExpandOptions) {
		opts.Config = config.Normalized()
	}
}

// WithMaxDepth sets the placeholder nesting bound. Negative values mean
// DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(opts *ExpandOptions) {
		if depth < 0 {
			depth = DefaultMaxDepth
		}
		opts.Config.MaxDepth = depth
	}
}

// WithRawDelimiters sets the raw-span delimiters of the transport.
func WithRawDelimiters(openDelim, closeDelim string) Option {
	return func(opts *ExpandOptions) {
		if d := (Delimiters{Open: openDelim, Close: closeDelim}); d.Valid() {
			opts.Config.Raw = d
		}
	}
}

// WithPlaceholderDelimiters sets the delimiters around trigger names.
func WithPlaceholderDelimiters(openDelim, closeDelim string) Option {
	return func(opts *ExpandOptions) {
		if d := (Delimiters{Open: openDelim, Close: closeDelim}); d.Valid() {
			opts.Config.Placeholder = d
		}
	}
}

// WithRootDomain sets the domain bare host names are auto-linked under.
// An empty domain turns bare-domain links off.
func WithRootDomain(domain string) Option {
	return func(opts *ExpandOptions) {
		opts.Config.RootDomain = domain
	}
}

// WithBreaks sets whether single newlines in Markdown become line breaks.
func WithBreaks(enable bool) Option {
	return func(opts *ExpandOptions) {
		opts.Config.Breaks = enable
	}
}

// WithUTF16 sets whether carets and ranges are measured in UTF-16 code units.
func WithUTF16(enable bool) Option {
	return func(opts *ExpandOptions) {
		opts.UTF16 = enable
	}
}

// defaultExpandOptions returns the default options with a private copy of
// the default config.
func defaultExpandOptions() *ExpandOptions {
	config := *DefaultConfig()
	return &ExpandOptions{
		Config: &config,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ExpandOptions {
	options := defaultExpandOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
