// Package logging builds the process logger and the reporter that
// records errors operations deliberately swallow.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	// trace and panic levels are not used
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "", "warning", "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	return log, nil
}

// Reporter logs suppressed errors at warn level.
type Reporter struct {
	log logrus.FieldLogger
}

var _ ports.ErrorReporter = (*Reporter)(nil)

func NewReporter(log logrus.FieldLogger) *Reporter {
	return &Reporter{log: log}
}

func (r *Reporter) Suppressed(operation string, err error) {
	if err == nil {
		return
	}
	r.log.WithFields(logrus.Fields{
		"operation": operation,
		"error":     err.Error(),
	}).Warn("suppressed error")
}
