package net_test

import (
	"net/http"
	"testing"

	perr "bazi/internal/platform/errors"
	pnet "bazi/internal/platform/net"

	"github.com/stretchr/testify/assert"
)

func TestOKEnvelope(t *testing.T) {
	status, w := pnet.OK(map[string]any{"text": "甲辰 丙寅 甲辰 辛未"}, "req-1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, pnet.Wire{
		StatusCode: http.StatusOK,
		Status:     "OK",
		RequestID:  "req-1",
		Data:       map[string]any{"text": "甲辰 丙寅 甲辰 辛未"},
	}, w)
}

func TestErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		want   pnet.Wire
	}{
		{
			name:   "nil is ok",
			status: http.StatusOK,
			want:   pnet.Wire{StatusCode: http.StatusOK, Status: "OK", RequestID: "rid"},
		},
		{
			name:   "time resolution carries field and stage",
			err:    perr.WithOp(perr.WithField(perr.TimeResolutionf("nonexistent local time"), "birth_local"), "ResolveLocalTime"),
			status: http.StatusUnprocessableEntity,
			want: pnet.Wire{
				StatusCode: http.StatusUnprocessableEntity,
				Status:     "Unprocessable Entity",
				Code:       perr.ErrorCodeTimeResolution,
				Kind:       "TimeResolutionError",
				Error:      "nonexistent local time",
				Field:      "birth_local",
				Stage:      "ResolveLocalTime",
				RequestID:  "rid",
			},
		},
		{
			name:   "foreign error is unknown",
			err:    http.ErrHandlerTimeout,
			status: http.StatusInternalServerError,
			want: pnet.Wire{
				StatusCode: http.StatusInternalServerError,
				Status:     "Internal Server Error",
				Kind:       "Unknown",
				Error:      http.ErrHandlerTimeout.Error(),
				RequestID:  "rid",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, w := pnet.Error(c.err, "rid")
			assert.Equal(t, c.status, status)
			assert.Equal(t, c.want, w)
		})
	}
}
