package app

// Verbosity controls how much diagnostic output an invocation emits.
type Verbosity int

const (
	// Silent suppresses all diagnostic output.
	Silent Verbosity = iota
	// Normal emits progress messages.
	Normal
	// Debug additionally emits internal diagnostics, including caught
	// low-level errors before they are converted.
	Debug
)

// String returns the verbosity name.
func (v Verbosity) String() string {
	switch v {
	case Silent:
		return "silent"
	case Normal:
		return "normal"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseVerbosity parses a verbosity name. Unknown names map to Normal.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "silent", "quiet":
		return Silent
	case "debug", "verbose":
		return Debug
	default:
		return Normal
	}
}
