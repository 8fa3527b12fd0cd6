package debug

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/spaghettifunk/prism/engine/core"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

/** @brief A diagnostic emitted by the validation layer. */
type Message struct {
	Severity Severity
	/** @brief Label of the object the message is about, for example "shader `blit.vert`". */
	Source string
	Text   string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s: %s", m.Severity, m.Source, m.Text)
}

/**
 * @brief Collects validation messages and mirrors them to the engine logger.
 * Errors are also fired as EVENT_CODE_VALIDATION_ERROR events.
 */
type Debugger struct {
	mu       sync.Mutex
	messages []Message
	logger   *log.Logger
}

func NewDebugger() *Debugger {
	return &Debugger{logger: core.Logger("debug")}
}

func (d *Debugger) post(severity Severity, source, format string, args ...interface{}) {
	m := Message{Severity: severity, Source: source, Text: fmt.Sprintf(format, args...)}

	d.mu.Lock()
	d.messages = append(d.messages, m)
	d.mu.Unlock()

	switch severity {
	case SeverityError:
		d.logger.Error(m.Text, "source", source)
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_VALIDATION_ERROR, Data: m.String()})
	case SeverityWarning:
		d.logger.Warn(m.Text, "source", source)
	default:
		d.logger.Info(m.Text, "source", source)
	}
}

func (d *Debugger) Infof(source, format string, args ...interface{}) {
	d.post(SeverityInfo, source, format, args...)
}

func (d *Debugger) Warnf(source, format string, args ...interface{}) {
	d.post(SeverityWarning, source, format, args...)
}

func (d *Debugger) Errorf(source, format string, args ...interface{}) {
	d.post(SeverityError, source, format, args...)
}

// Messages returns a copy of every message posted since the last Reset.
func (d *Debugger) Messages() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Message(nil), d.messages...)
}

// Errors returns the messages with error severity.
func (d *Debugger) Errors() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []Message
	for _, m := range d.messages {
		if m.Severity == SeverityError {
			errs = append(errs, m)
		}
	}
	return errs
}

func (d *Debugger) HasErrors() bool {
	return len(d.Errors()) > 0
}

func (d *Debugger) Reset() {
	d.mu.Lock()
	d.messages = nil
	d.mu.Unlock()
}
