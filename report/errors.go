package report

import (
	"fmt"
	"sync"
)

// Enumeration of log levels, in the same order and with the same meaning as
// chai/src/logging: each level is a strict superset of the output of the
// level below it.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarning
	LogLevelVerbose
)

// reporter is the package-global error/warning accumulator.  It exists for
// the same reason chai/src/logging.logger does: multiple generation stages
// may want to report diagnostics without threading a reporter handle through
// every call, and the generator itself is single-threaded so no additional
// synchronization is needed beyond what CLI-level concurrent builds might
// add later.
type reporter struct {
	m        sync.Mutex
	logLevel int
	isErr    bool
	warnings int
}

var rep = reporter{logLevel: LogLevelVerbose}

// Init sets the active log level.  It should be called once, before any
// generation begins.
func Init(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.isErr = false
	rep.warnings = 0
}

// ShouldProceed reports whether generation may proceed: true until a compile
// error has been recorded.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return !rep.isErr
}

// -----------------------------------------------------------------------------

// ICError is an internal compiler error: a condition the generator should
// never produce on its own, as opposed to a malformed or unsupported input.
// It is always panicked, never returned, and always displayed regardless of
// log level.
type ICError struct {
	Message string
}

func (e *ICError) Error() string {
	return e.Message
}

// FatalError is an expected, but unrecoverable error: an unsupported AST
// shape or type, or an I/O failure writing output.  It is panicked so that
// CatchErrors at the top of generation can turn it into a returned error
// without aborting the whole process.
type FatalError struct {
	Message string
	Span    *TextSpan
}

func (e *FatalError) Error() string {
	if e.Span != nil {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Span)
	}

	return e.Message
}

// ReportICE panics with an internal compiler error.  Name matches
// chai/bootstrap/report.ReportICE.
func ReportICE(format string, args ...interface{}) {
	panic(&ICError{Message: fmt.Sprintf(format, args...)})
}

// ReportFatal panics with a fatal, expected error.
func ReportFatal(format string, args ...interface{}) {
	panic(&FatalError{Message: fmt.Sprintf(format, args...)})
}

// ReportFatalAt panics with a fatal error tied to a source span.
func ReportFatalAt(span *TextSpan, format string, args ...interface{}) {
	panic(&FatalError{Message: fmt.Sprintf(format, args...), Span: span})
}

// ReportCompileError records a source-level compile error without aborting
// generation immediately; ShouldProceed will return false from this point
// on.  Used for diagnostics that the generator can detect locally (such as
// the literal-index bounds check) but that do not need to unwind the stack.
func ReportCompileError(span *TextSpan, format string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayCompileError(span, fmt.Sprintf(format, args...))
	}
}

// ReportWarning records a non-fatal diagnostic.
func ReportWarning(span *TextSpan, format string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnings++

	if rep.logLevel >= LogLevelWarning {
		displayWarning(span, fmt.Sprintf(format, args...))
	}
}

// -----------------------------------------------------------------------------

// CatchErrors recovers a panicked *ICError or *FatalError and stores it into
// *errOut, turning what would otherwise be a crash into a normal error
// return.  It must always be deferred, exactly as chai/bootstrap/report.
// CatchErrors is.  Any other panic value is re-raised.
func CatchErrors(errOut *error) {
	if x := recover(); x != nil {
		switch e := x.(type) {
		case *ICError:
			displayICE(e.Message)
			*errOut = e
		case *FatalError:
			displayFatal(e.Message)
			*errOut = e
		default:
			panic(x)
		}
	}
}
