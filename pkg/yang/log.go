package yang

// Logging is an injected interface: per spec.md §1, the embedding
// application's logging is a collaborator, not something this package
// owns globally. Ctx holds a Logger and defaults to NoopLogger so the
// library stays silent unless an embedder opts in.

import "github.com/rs/zerolog"

// Logger is the diagnostic sink a Ctx writes through. Implementations
// must be safe for concurrent use; Ctx may call these methods from
// any goroutine driving a ParseModule/resolve call.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoopLogger discards everything. It is Ctx's default.
type NoopLogger struct{}

func (NoopLogger) Debugf(string, ...interface{}) {}
func (NoopLogger) Infof(string, ...interface{})  {}
func (NoopLogger) Warnf(string, ...interface{})  {}
func (NoopLogger) Errorf(string, ...interface{}) {}

// zerologLogger adapts a zerolog.Logger to the Logger interface, for
// CLI and standalone use where structured, leveled logging is wanted
// without forcing every embedder to take a zerolog dependency.
type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger adapts l to Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

func (z zerologLogger) Debugf(format string, args ...interface{}) {
	z.l.Debug().Msgf(format, args...)
}

func (z zerologLogger) Infof(format string, args ...interface{}) {
	z.l.Info().Msgf(format, args...)
}

func (z zerologLogger) Warnf(format string, args ...interface{}) {
	z.l.Warn().Msgf(format, args...)
}

func (z zerologLogger) Errorf(format string, args ...interface{}) {
	z.l.Error().Msgf(format, args...)
}
