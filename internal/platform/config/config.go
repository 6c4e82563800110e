// Package config reads settings from environment variables. Every reader
// takes a default; a present but unparsable value logs a warning and falls
// back to it, except MayEnum which refuses to start with a bad choice.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bazi/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. "BAZI_" for
// the engine and "BAZI_API_" for the HTTP server
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value of key; empty counts as unset
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	return v, v != ""
}

// may parses key with parse, returning def when unset or invalid
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Str("default", fmt.Sprint(def)).
			Err(err).
			Msg("invalid config value; using default")
		return def
	}
	return v
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value as an int or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayBool accepts the strconv.ParseBool forms
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration accepts Go duration literals such as 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MaySeconds reads a non-negative decimal number of seconds, e.g. "0.5"
func (c Conf) MaySeconds(key string, def time.Duration) time.Duration {
	return may(c, key, def, func(s string) (time.Duration, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, fmt.Errorf("negative seconds %v", v)
		}
		return time.Duration(v * float64(time.Second)), nil
	})
}

// MayLocation loads an IANA zone name, e.g. "Asia/Shanghai"
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	return may(c, key, def, time.LoadLocation)
}

// MayCSV splits a comma-separated value and drops blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it case-insensitively matches one of
// allowed, def when unset, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
