package sexagenary

import (
	"golang.org/x/text/language"
)

// Script selects how stems, branches and terms are rendered
type Script uint8

const (
	// Pinyin renders romanized names such as "JiaChen"
	Pinyin Script = iota
	// Hans renders simplified characters
	Hans
	// Hant renders traditional characters
	Hant
)

// String returns the tag-like name of the script
func (s Script) String() string {
	switch s {
	case Hans:
		return "zh-Hans"
	case Hant:
		return "zh-Hant"
	default:
		return "pinyin"
	}
}

// Tag returns the BCP 47 tag of the script, suitable for Content-Language
func (s Script) Tag() language.Tag {
	switch s {
	case Hans:
		return language.SimplifiedChinese
	case Hant:
		return language.TraditionalChinese
	default:
		return pinyinTag
	}
}

var pinyinTag = language.MustParse("zh-Latn-pinyin")

// first entry is the fallback when nothing matches
var (
	supported = []language.Tag{
		language.English,
		language.SimplifiedChinese,
		language.TraditionalChinese,
	}
	scripts = []Script{Pinyin, Hans, Hant}
	matcher = language.NewMatcher(supported)
)

// ScriptFor negotiates a script from preferred language tags
func ScriptFor(prefs ...language.Tag) Script {
	if len(prefs) == 0 {
		return Pinyin
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Pinyin
	}
	return scripts[idx]
}

// ScriptFromAcceptLanguage negotiates a script from an Accept-Language header value
// Malformed headers fall back to pinyin
func ScriptFromAcceptLanguage(header string) Script {
	if header == "" {
		return Pinyin
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return Pinyin
	}
	return ScriptFor(tags...)
}

// Names renders cycle members in one script
type Names struct{ script Script }

// NamesFor returns a renderer for the given script
func NamesFor(s Script) Names { return Names{script: s} }

// Script returns the script used by the renderer
func (n Names) Script() Script { return n.script }

// Pillar renders a pillar
func (n Names) Pillar(p Pillar) string {
	if n.script == Pinyin {
		return p.String()
	}
	return p.Hanzi()
}

// Stem renders a stem
func (n Names) Stem(i int) string {
	if n.script == Pinyin {
		return StemName(i)
	}
	return stemHanzi[mod(i, StemCount)]
}

// Branch renders a branch
func (n Names) Branch(i int) string {
	if n.script == Pinyin {
		return BranchName(i)
	}
	return branchHanzi[mod(i, BranchCount)]
}

// Term renders a solar term
func (n Names) Term(i int) string {
	switch n.script {
	case Hans:
		return termHans[mod(i, TermCount)]
	case Hant:
		return termHant[mod(i, TermCount)]
	default:
		return TermName(i)
	}
}

// Element renders a phase
func (n Names) Element(e Element) string {
	if n.script == Pinyin {
		return e.String()
	}
	return e.Hanzi()
}
