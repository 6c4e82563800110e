package net

import (
	"net/http"

	perr "bazi/internal/platform/errors"
)

// Wire is the JSON envelope every API response is wrapped in. Failures
// carry the error kind, the offending input field and the pipeline stage.
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Kind       string         `json:"kind,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	Stage      string         `json:"stage,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// OK wraps data in a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID)
	w.Data = data
	return w.StatusCode, w
}

// Error maps err to its HTTP status and envelope; a nil err is an empty OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	pw := perr.WireFrom(err)
	w := envelope(perr.HTTPStatus(err), reqID)
	w.Code, w.Kind, w.Error = pw.Code, pw.Kind, pw.Message
	w.Field, w.Stage = pw.Field, pw.Stage
	return w.StatusCode, w
}
