package ports

// Logger is the application-wide logging interface.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error, formatting wrapped causes hierarchically.
	Error(err error)
}
