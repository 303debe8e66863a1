package uses

import "time"

// Descriptor stages reported through CompileLogEvent and Trace.
const (
	StageSegment = "segment"
	StageBuiltin = "builtin"
)

// CompileLogEvent describes one descriptor compilation for logging.
type CompileLogEvent struct {
	Stage    string
	Loader   string
	Identity string
	Loaders  int
	Duration time.Duration
	Err      error
}

// CompileLogger records compilation events.
type CompileLogger interface {
	LogCompile(CompileLogEvent)
}

// CompileLoggerFunc adapts a function to CompileLogger.
type CompileLoggerFunc func(CompileLogEvent)

// LogCompile implements CompileLogger.
func (f CompileLoggerFunc) LogCompile(event CompileLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopCompileLogger struct{}

func (noopCompileLogger) LogCompile(CompileLogEvent) {}

// WithCompileLogger attaches a compile logger to the Compiler.
func WithCompileLogger(logger CompileLogger) Option {
	return func(cfg *compilerConfig) {
		if logger == nil {
			cfg.logger = noopCompileLogger{}
			return
		}
		cfg.logger = logger
	}
}
