package placeholders

const (
	// MaxPosition is the largest positional index a placeholder may carry.
	MaxPosition = 1<<16 - 1

	// DefaultCacheSize is the number of parsed templates the CLI keeps cached
	// unless configured otherwise.
	DefaultCacheSize = 256
)
