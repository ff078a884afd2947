package interfaces

// InlineRenderer converts short markdown fragments (paragraph text, list
// items, callout bodies) into HTML. Block structure is decided by the post
// segmenter; implementations only deal with emphasis, links and similar
// inline markup inside a single block.
type InlineRenderer interface {
	// Parse converts markdown into HTML using the renderer's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises inline rendering, keeping option names readable
// for configuration and CLI flags.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
