package sexagenary

// Element is one of the five phases attached to stems and branches
type Element uint8

const (
	// Wood phase
	Wood Element = iota
	// Fire phase
	Fire
	// Earth phase
	Earth
	// Metal phase
	Metal
	// Water phase
	Water
)

var elementNames = [5]string{"Wood", "Fire", "Earth", "Metal", "Water"}
var elementHanzi = [5]string{"木", "火", "土", "金", "水"}

// String returns the English name of the phase
func (e Element) String() string {
	if int(e) >= len(elementNames) {
		return "Unknown"
	}
	return elementNames[e]
}

// Hanzi returns the single character name of the phase
func (e Element) Hanzi() string {
	if int(e) >= len(elementHanzi) {
		return ""
	}
	return elementHanzi[e]
}

const (
	// StemCount is the length of the celestial stem cycle
	StemCount = 10
	// BranchCount is the length of the terrestrial branch cycle
	BranchCount = 12
	// CycleLength is the length of the combined stem-branch cycle
	CycleLength = 60
	// TermCount is the number of solar terms, one every 15 degrees of solar longitude
	TermCount = 24
)

// stems, branches and terms are read-only tables indexed by their cycle position
var (
	stemPinyin = [StemCount]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}
	stemHanzi  = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

	branchPinyin = [BranchCount]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}
	branchHanzi  = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchAnimal = [BranchCount]string{
		"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
		"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
	}
	branchElement = [BranchCount]Element{
		Water, Earth, Wood, Wood, Earth, Fire,
		Fire, Earth, Metal, Metal, Earth, Water,
	}

	// term k sits at 15k degrees; index 0 is the March equinox
	termPinyin = [TermCount]string{
		"Chunfen", "Qingming", "Guyu", "Lixia", "Xiaoman", "Mangzhong",
		"Xiazhi", "Xiaoshu", "Dashu", "Liqiu", "Chushu", "Bailu",
		"Qiufen", "Hanlu", "Shuangjiang", "Lidong", "Xiaoxue", "Daxue",
		"Dongzhi", "Xiaohan", "Dahan", "Lichun", "Yushui", "Jingzhe",
	}
	termHans = [TermCount]string{
		"春分", "清明", "谷雨", "立夏", "小满", "芒种",
		"夏至", "小暑", "大暑", "立秋", "处暑", "白露",
		"秋分", "寒露", "霜降", "立冬", "小雪", "大雪",
		"冬至", "小寒", "大寒", "立春", "雨水", "惊蛰",
	}
	termHant = [TermCount]string{
		"春分", "清明", "穀雨", "立夏", "小滿", "芒種",
		"夏至", "小暑", "大暑", "立秋", "處暑", "白露",
		"秋分", "寒露", "霜降", "立冬", "小雪", "大雪",
		"冬至", "小寒", "大寒", "立春", "雨水", "驚蟄",
	}
)

// StemName returns the pinyin name of stem i (taken mod 10)
func StemName(i int) string { return stemPinyin[mod(i, StemCount)] }

// BranchName returns the pinyin name of branch i (taken mod 12)
func BranchName(i int) string { return branchPinyin[mod(i, BranchCount)] }

// StemElement returns the phase of stem i; stems pair up per phase starting with Wood
func StemElement(i int) Element { return Element(mod(i, StemCount) / 2) }

// StemYang reports whether stem i is yang (even positions)
func StemYang(i int) bool { return mod(i, StemCount)%2 == 0 }

// BranchElement returns the phase of branch i
func BranchElement(i int) Element { return branchElement[mod(i, BranchCount)] }

// BranchAnimal returns the zodiac animal of branch i
func BranchAnimal(i int) string { return branchAnimal[mod(i, BranchCount)] }

// TermName returns the pinyin name of solar term i (taken mod 24)
func TermName(i int) string { return termPinyin[mod(i, TermCount)] }

// TermTarget returns the solar longitude in degrees of term i
func TermTarget(i int) float64 { return 15 * float64(mod(i, TermCount)) }

// IsJie reports whether term i is a month-opening term; those sit on odd multiples of 15 degrees
func IsJie(i int) bool { return mod(i, TermCount)%2 == 1 }

// mod is the non-negative remainder of a by n
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
