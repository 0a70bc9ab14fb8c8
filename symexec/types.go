package symexec

// Options configures symbolic execution.
type Options struct {
	// Tidy simplifies every register after the run (default: true).
	Tidy bool
	// MaxSimplifyPasses bounds the simplifier; 0 means unbounded (default: 10000).
	MaxSimplifyPasses int

	// Logging configuration
	LogLevel      string // "error", "warn", "info", "debug"; empty disables logging (default: "")
	LogMaxExprLen int    // Max formula characters shown in logs (default: 120)
	Logger        Logger // Overrides LogLevel when set
}

// DefaultOptions returns the default configuration for symbolic execution.
func DefaultOptions() Options {
	return Options{
		Tidy:              true,
		MaxSimplifyPasses: 10000,
		LogMaxExprLen:     120,
	}
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel == "" {
		return NopLogger()
	}
	return NewLogger(ParseLogLevel(o.LogLevel), nil)
}
