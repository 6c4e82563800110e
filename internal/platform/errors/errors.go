// Package errors is the project error type: a stable code, a message, the
// offending input field and the chart stage the failure came from.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure. Values are part of the wire format; append only.
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered by middleware
	ErrorCodeUnavailable                      // transient; a retry may succeed
	ErrorCodeInvalidArgument                  // bad parameters outside a request body
	ErrorCodeValidation                       // request body failed its constraints
	ErrorCodeJSON                             // request body is not the expected JSON
	ErrorCodeNotFound                         // no such resource
	ErrorCodeConfiguration                    // bad anchor, unknown zone or backend
	ErrorCodeTimeResolution                   // local time in a gap or fold-inconsistent
	ErrorCodeBracketing                       // a solar longitude crossing was not bracketed
)

// taxonomy maps each code to its kind name and HTTP status
var taxonomy = [...]struct {
	kind   string
	status int
}{
	ErrorCodeUnknown:         {"Unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"Panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"Unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument: {"InvalidArgument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"Validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"JSON", http.StatusBadRequest},
	ErrorCodeNotFound:        {"NotFound", http.StatusNotFound},
	ErrorCodeConfiguration:   {"ConfigurationError", http.StatusBadRequest},
	ErrorCodeTimeResolution:  {"TimeResolutionError", http.StatusUnprocessableEntity},
	ErrorCodeBracketing:      {"BracketingError", http.StatusInternalServerError},
}

func (c ErrorCode) known() bool { return int(c) < len(taxonomy) }

// String returns the kind name; codes outside the taxonomy are Unknown
func (c ErrorCode) String() string {
	if !c.known() {
		c = ErrorCodeUnknown
	}
	return taxonomy[c].kind
}

// Status is the HTTP status a transport answers with
func (c ErrorCode) Status() int {
	if !c.known() {
		c = ErrorCodeUnknown
	}
	return taxonomy[c].status
}

// Error carries a code and message plus the optional field and stage.
// Mutators copy, so a shared error value is never changed in place.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the transport view of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Kind    string    `json:"kind,omitempty"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Stage   string    `json:"stage,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code is the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field is the offending input field, if known
func (e *Error) Field() string { return e.field }

// Op is the stage that produced the error, if set
func (e *Error) Op() string { return e.op }

// ToWire drops the wrapped cause; only msg reaches clients
func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Kind: e.code.String(), Message: e.msg, Field: e.field, Stage: e.op}
}

// WireFrom maps any error; foreign errors become Unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Kind: ErrorCodeUnknown.String(), Message: err.Error()}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a status
func HTTPStatus(err error) int { return CodeOf(err).Status() }

func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// WithField returns a copy of err naming the offending field; foreign errors pass through
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err tagged with a stage; foreign errors pass through
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// WithOpIfEmpty tags the stage only when none is set, so the innermost stage wins
func WithOpIfEmpty(err error, op string) error {
	if e, ok := As(err); ok && e.op == "" {
		return WithOp(err, op)
	}
	return err
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap classifies orig under code
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a format
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// shorthands, one per code raised outside this package

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error    { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error   { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error {
	return Newf(ErrorCodeUnavailable, format, a...)
}
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfiguration, format, a...) }
func TimeResolutionf(format string, a ...any) error {
	return Newf(ErrorCodeTimeResolution, format, a...)
}
func Bracketingf(format string, a ...any) error { return Newf(ErrorCodeBracketing, format, a...) }
