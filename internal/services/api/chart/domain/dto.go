// Package domain holds DTOs for chart http and service contracts
package domain

// Local timestamps are naive ISO 8601 strings read on the civil clock of Timezone

// AnchorInput recalibrates the day cycle from a known date and its 60-cycle index
type AnchorInput struct {
	Date  string `json:"date"  validate:"required,datetime=2006-01-02" example:"1949-10-01"`
	Index int    `json:"index" validate:"min=0,max=59" example:"0"`
}

// ChartRequest is the body of POST /chart/bazi
type ChartRequest struct {
	BirthLocal      string       `json:"birth_local"                 validate:"required,iso_local" example:"2024-02-10T14:30:00"`
	Timezone        string       `json:"timezone"                    validate:"required" example:"Europe/Berlin"`
	Longitude       float64      `json:"longitude_deg"               validate:"min=-180,max=180" example:"13.405"`
	Latitude        float64      `json:"latitude_deg"                validate:"min=-90,max=90" example:"52.52"`
	Standard        string       `json:"time_standard,omitempty"     validate:"omitempty,oneof=CIVIL LMT civil lmt" example:"CIVIL"`
	DayBoundary     string       `json:"day_boundary,omitempty"      validate:"omitempty,oneof=midnight zi" example:"midnight"`
	Strict          *bool        `json:"strict,omitempty" example:"true"`
	Fold            int          `json:"fold,omitempty"              validate:"oneof=0 1" example:"0"`
	AccuracySeconds float64      `json:"accuracy_seconds,omitempty"  validate:"omitempty,gt=0,max=3600" example:"1"`
	Anchor          *AnchorInput `json:"day_anchor,omitempty"`
	Backend         string       `json:"ephemeris_backend,omitempty" validate:"omitempty,max=64" example:"vsop87"`
}

// TermsRequest is read from the query of GET /chart/terms
type TermsRequest struct {
	Year            int
	Timezone        string
	AccuracySeconds float64
	Backend         string
}

// PillarView is one pillar with its indices and display metadata
type PillarView struct {
	Text          string `json:"text"           example:"JiaChen"`
	Stem          string `json:"stem"           example:"Jia"`
	Branch        string `json:"branch"         example:"Chen"`
	StemIndex     int    `json:"stem_index"     example:"0"`
	BranchIndex   int    `json:"branch_index"   example:"4"`
	CycleIndex    int    `json:"cycle_index"    example:"40"`
	StemElement   string `json:"stem_element"   example:"Wood"`
	BranchElement string `json:"branch_element" example:"Earth"`
	Animal        string `json:"animal"         example:"Dragon"`
	Yang          bool   `json:"yang"           example:"true"`
}

// Pillars groups the four pillars
type Pillars struct {
	Year  PillarView `json:"year"`
	Month PillarView `json:"month"`
	Day   PillarView `json:"day"`
	Hour  PillarView `json:"hour"`
}

// Instant is one moment in UTC and on the chart clock
type Instant struct {
	UTC   string `json:"utc"   example:"2024-02-04T08:26:53Z"`
	Local string `json:"local" example:"2024-02-04T09:26:53+01:00"`
}

// SolarTermView is one crossing of the 24 term table
type SolarTermView struct {
	Index     int     `json:"index"      example:"21"`
	Name      string  `json:"name"       example:"Lichun"`
	TargetDeg float64 `json:"target_deg" example:"315"`
	Jie       bool    `json:"jie"        example:"true"`
	Instant
}

// Diagnostics reports best-effort parts of the chart that could not be computed
type Diagnostics struct {
	SolarTermsError string `json:"solar_terms_error,omitempty"`
}

// ChartResponse is the computed chart
type ChartResponse struct {
	Key             string          `json:"key" example:"9b0f5c8e-2f7e-5b8c-9a0e-6f1d2c3b4a59"`
	Input           ChartRequest    `json:"input"`
	Backend         string          `json:"ephemeris_backend" example:"vsop87"`
	Script          string          `json:"script" example:"pinyin"`
	Text            string          `json:"text" example:"JiaChen BingYin JiaChen XinWei"`
	Pillars         Pillars         `json:"pillars"`
	BirthLocal      string          `json:"birth_local" example:"2024-02-10T14:30:00+01:00"`
	BirthUTC        string          `json:"birth_utc" example:"2024-02-10T13:30:00Z"`
	ChartLocal      string          `json:"chart_local" example:"2024-02-10T14:30:00+01:00"`
	JDUT            float64         `json:"jd_ut" example:"2460351.0625"`
	JDTT            float64         `json:"jd_tt" example:"2460351.06330"`
	DeltaTSeconds   float64         `json:"delta_t_seconds" example:"69.2"`
	SolarYear       int             `json:"solar_year" example:"2024"`
	MonthIndex      int             `json:"month_index" example:"0"`
	DayOffset       int             `json:"day_offset" example:"49"`
	LiChun          Instant         `json:"lichun"`
	MonthBoundaries []Instant       `json:"month_boundaries"`
	SolarTermCount  int             `json:"solar_term_count" example:"24"`
	SolarTerms      []SolarTermView `json:"solar_terms,omitempty"`
	Diagnostics     Diagnostics     `json:"diagnostics"`
}

// TermsResponse is the term table of one solar year
type TermsResponse struct {
	Year       int             `json:"year" example:"2024"`
	Timezone   string          `json:"timezone" example:"Asia/Shanghai"`
	Backend    string          `json:"ephemeris_backend" example:"vsop87"`
	Script     string          `json:"script" example:"zh-Hans"`
	LiChun     Instant         `json:"lichun"`
	Boundaries []Instant       `json:"month_boundaries"`
	Terms      []SolarTermView `json:"terms"`
}

// BackendsResponse lists the selectable ephemeris backends
type BackendsResponse struct {
	Default  string   `json:"default" example:"vsop87"`
	Backends []string `json:"backends" example:"vsop87,vsop87-direct"`
}
