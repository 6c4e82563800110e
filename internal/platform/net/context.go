// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyChartKey ctxKey = "chart_key"
	keyLanguage ctxKey = "language"
)

// WithRequest annotates context with the request id and, once known, the chart input key
func WithRequest(ctx context.Context, reqID, chartKey string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if chartKey != "" {
		ctx = context.WithValue(ctx, keyChartKey, chartKey)
	}
	return ctx
}

// WithLanguage records the raw Accept-Language header of the request
func WithLanguage(ctx context.Context, header string) context.Context {
	if header != "" {
		ctx = context.WithValue(ctx, keyLanguage, header)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ChartKey returns the chart input key on the context if present
func ChartKey(ctx context.Context) string {
	if v, ok := ctx.Value(keyChartKey).(string); ok {
		return v
	}
	return ""
}

// Language returns the Accept-Language header on the context if present
func Language(ctx context.Context) string {
	if v, ok := ctx.Value(keyLanguage).(string); ok {
		return v
	}
	return ""
}
