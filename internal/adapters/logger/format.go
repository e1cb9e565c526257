package logger

import (
	"os"

	"golang.org/x/term"
)

// Format represents the log output format.
type Format int

const (
	// FormatAuto automatically detects the appropriate format.
	FormatAuto Format = iota
	// FormatPretty forces human-readable colored output.
	FormatPretty
	// FormatJSON forces machine-readable JSON output.
	FormatJSON
)

// DetectFormat returns the recommended log format based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectFormat() Format {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveFormat applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveFormat(autoDetected Format, userFlag string) Format {
	switch userFlag {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
