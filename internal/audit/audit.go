package audit

import (
	"github.com/sirupsen/logrus"
)

// Severity classifies recorded events. Higher values are chattier; a recorder
// configured at level N emits only events with Severity <= N.
type Severity int

const (
	SeverityNothing Severity = iota
	SeverityInternalError
	SeverityForbidden
	SeverityError
	SeverityAction
)

// DefaultLevel records everything, matching the historical LOG_LEVEL default.
const DefaultLevel = SeverityAction

func (s Severity) String() string {
	switch s {
	case SeverityInternalError:
		return "internal_error"
	case SeverityForbidden:
		return "forbidden"
	case SeverityError:
		return "error"
	case SeverityAction:
		return "action"
	default:
		return "nothing"
	}
}

// Recorder receives one message per business-rule outcome worth keeping.
// Credentials are never passed through here.
type Recorder interface {
	Record(message string, severity Severity)
}

type logrusRecorder struct {
	logger *logrus.Logger
	level  Severity
}

// NewRecorder builds a Recorder that emits through the given logrus logger,
// dropping events above the configured level.
func NewRecorder(logger *logrus.Logger, level Severity) Recorder {
	return &logrusRecorder{logger: logger, level: level}
}

func (r *logrusRecorder) Record(message string, severity Severity) {
	if severity > r.level || severity <= SeverityNothing {
		return
	}

	entry := r.logger.WithField("severity", severity.String())
	switch severity {
	case SeverityInternalError, SeverityError:
		entry.Error(message)
	case SeverityForbidden:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}
