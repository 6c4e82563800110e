package chart

import (
	"fmt"
	"math"
	"strings"

	"bazi/internal/core/normalize"

	"github.com/google/uuid"
)

// keySpace namespaces chart input keys
var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:bazi:chart-input"))

// Key returns a deterministic UUIDv5 over the rounded, normalized inputs
// Equal keys imply equal charts for the same engine configuration, so callers may cache on it
func Key(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%.6f|%.6f|%s|%s|%t|%d|%d|",
		normalize.Literal(in.BirthLocal),
		normalize.Zone(in.Timezone),
		round6(in.Longitude), round6(in.Latitude),
		strings.ToUpper(string(in.Standard)),
		strings.ToLower(string(in.DayBoundary)),
		in.Strict, in.Fold, int64(in.Accuracy),
	)
	if in.Anchor != nil {
		fmt.Fprintf(&b, "%04d-%02d-%02d#%d", in.Anchor.Year, in.Anchor.Month, in.Anchor.Day, in.Anchor.Index)
	}
	fmt.Fprintf(&b, "|%s", strings.ToLower(strings.TrimSpace(in.Backend)))
	return uuid.NewSHA1(keySpace, []byte(b.String())).String()
}

func round6(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0 // fold -0
	}
	return r
}
