// Package normalize cleans user supplied timestamp and zone literals before parsing
// Pipeline order
// 1 Sanitize controls and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Remove combining marks and format characters (zero-widths, BOM)
// 4 Width fold fullwidth digits and punctuation to ASCII
// 5 Map CJK date markers (年 月 日 时 分 秒) to ISO separators
// 6 Collapse whitespace to single spaces and trim
// 7 Zero pad numeric date and time fields
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			runes.Remove(runes.Predicate(isStrayControl)),
			norm.NFKC,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// markers maps CJK calendar markers onto ISO separators
var markers = strings.NewReplacer(
	"年", "-",
	"月", "-",
	"日", " ",
	"号", " ",
	"號", " ",
	"时", ":",
	"時", ":",
	"点", ":",
	"點", ":",
	"分", ":",
	"秒", "",
)

var fields = regexp.MustCompile(`^(\d{1,4})-(\d{1,2})-(\d{1,2})(?:[ T](\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2})(\.\d+)?)?)?$`)

// isStrayControl matches C0, DEL and C1 controls other than whitespace
func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}

// fold runs steps 1 to 4
func fold(s string) string {
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Literal normalizes a local timestamp literal such as "２０２４年2月10日 14时30分" to "2024-02-10 14:30"
// Inputs that do not look like a date come back folded and trimmed but otherwise untouched
func Literal(s string) string {
	if s == "" {
		return ""
	}
	s = markers.Replace(fold(s))
	s = collapseSpaces(s)
	s = strings.TrimRight(s, ":- ")
	return pad(s)
}

// pad zero pads the numeric fields of a recognised date or date-time
func pad(s string) string {
	m := fields.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	out := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if m[4] == "" {
		return out
	}
	sep := s[len(m[1])+len(m[2])+len(m[3])+2]
	hour, _ := strconv.Atoi(m[4])
	minute := 0
	if m[5] != "" {
		minute, _ = strconv.Atoi(m[5])
	}
	out += fmt.Sprintf("%c%02d:%02d", sep, hour, minute)
	if m[6] != "" {
		sec, _ := strconv.Atoi(m[6])
		out += fmt.Sprintf(":%02d%s", sec, m[7])
	}
	return out
}

// Zone normalizes an IANA zone name: folded, trimmed, inner spaces as underscores
func Zone(s string) string {
	s = collapseSpaces(fold(s))
	return strings.ReplaceAll(s, " ", "_")
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
