package ports

// ErrorReporter receives errors that an operation deliberately does not
// return to its caller: the logout notification, polling ticks and
// corrupt persisted profiles.
type ErrorReporter interface {
	Suppressed(operation string, err error)
}

type NopReporter struct{}

func (NopReporter) Suppressed(string, error) {}
