package metadata

import (
	"fmt"
	"strings"
)

/**
 * @brief Diagnostic record attached to a compiled or linked object.
 */
type Report struct {
	text      string
	hasErrors bool
}

func NewReport(text string, hasErrors bool) *Report {
	return &Report{text: text, hasErrors: hasErrors}
}

func (r *Report) Text() string {
	if r == nil {
		return ""
	}
	return r.text
}

// HasErrors reports whether the object failed to build.
func (r *Report) HasErrors() bool {
	return r != nil && r.hasErrors
}

// Printf appends an informational line.
func (r *Report) Printf(format string, args ...interface{}) {
	r.appendLine(fmt.Sprintf(format, args...))
}

// Errorf appends a line and marks the report as failed.
func (r *Report) Errorf(format string, args ...interface{}) {
	r.appendLine(fmt.Sprintf(format, args...))
	r.hasErrors = true
}

func (r *Report) Reset() {
	r.text = ""
	r.hasErrors = false
}

func (r *Report) String() string {
	return r.Text()
}

func (r *Report) appendLine(s string) {
	r.text += s
	if !strings.HasSuffix(s, "\n") {
		r.text += "\n"
	}
}
