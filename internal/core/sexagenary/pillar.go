// Package sexagenary implements the stem-branch cycle arithmetic behind the four pillars
// Everything here is pure integer math over read-only tables
package sexagenary

// Pillar is a stem-branch pair; valid pillars always share parity between stem and branch
type Pillar struct {
	Stem   int `json:"stem_index"`
	Branch int `json:"branch_index"`
}

// FromIndex60 builds the pillar at position i of the 60 cycle (i taken mod 60)
func FromIndex60(i int) Pillar {
	i = mod(i, CycleLength)
	return Pillar{Stem: i % StemCount, Branch: i % BranchCount}
}

// Index60 returns the position of p in the 60 cycle
// Solves i = Stem mod 10 and i = Branch mod 12, which has a solution only when parities agree
func (p Pillar) Index60() int {
	return mod(6*p.Stem-5*p.Branch, CycleLength)
}

// Valid reports whether p is a member of the 60 cycle
func (p Pillar) Valid() bool {
	return p.Stem >= 0 && p.Stem < StemCount &&
		p.Branch >= 0 && p.Branch < BranchCount &&
		(p.Stem-p.Branch)%2 == 0
}

// String returns the pinyin form, e.g. "JiaChen"
func (p Pillar) String() string { return StemName(p.Stem) + BranchName(p.Branch) }

// Hanzi returns the two character form, e.g. "甲辰"
func (p Pillar) Hanzi() string {
	return stemHanzi[mod(p.Stem, StemCount)] + branchHanzi[mod(p.Branch, BranchCount)]
}

// Next returns the pillar n positions later in the cycle (n may be negative)
func (p Pillar) Next(n int) Pillar { return FromIndex60(p.Index60() + n) }

// FourPillars is the year, month, day and hour pillars of one chart
type FourPillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Slice returns the pillars in year, month, day, hour order
func (fp FourPillars) Slice() [4]Pillar { return [4]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour} }

// String joins the pinyin forms with spaces
func (fp FourPillars) String() string {
	return fp.Year.String() + " " + fp.Month.String() + " " + fp.Day.String() + " " + fp.Hour.String()
}
