// Package chart assembles a four pillar chart from a birth timestamp and location
package chart

import (
	"time"

	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
)

// Stage names one step of the assembly; fatal errors carry the stage they came from as their op
type Stage string

// Stages in execution order
const (
	StageParseInput             Stage = "ParseInput"
	StageResolveLocalTime       Stage = "ResolveLocalTime"
	StageLocateLichun           Stage = "LocateLichun"
	StageDeriveYear             Stage = "DeriveYear"
	StageComputeMonthBoundaries Stage = "ComputeMonthBoundaries"
	StageComputeMonthPillar     Stage = "ComputeMonthPillar"
	StageComputeDayPillar       Stage = "ComputeDayPillar"
	StageComputeHourPillar      Stage = "ComputeHourPillar"
	StageComputeSolarTerms      Stage = "ComputeSolarTermsWindow"
	StageDone                   Stage = "Done"
)

// DefaultAccuracy is used when Input.Accuracy is zero
const DefaultAccuracy = time.Second

// Input is one chart request
type Input struct {
	BirthLocal  string
	Timezone    string
	Longitude   float64
	Latitude    float64
	Standard    localtime.Standard
	DayBoundary localtime.DayBoundary
	Strict      bool
	Fold        localtime.Fold
	Accuracy    time.Duration
	Anchor      *sexagenary.Anchor // nil keeps the default day offset
	Backend     string             // empty selects the engine default
}

// SolarTerm is one crossing of the 24 term table
type SolarTerm struct {
	Index     int
	Name      string
	TargetDeg float64
	Local     localtime.ChartTime
}

// Diagnostics records best-effort stages that failed without invalidating the chart
type Diagnostics struct {
	SolarTermsError string
}

// Result is a computed chart; it is never returned partially filled
type Result struct {
	Input   Input
	Key     string
	Backend string
	Pillars sexagenary.FourPillars

	BirthLocal time.Time // resolved civil instant in the birth zone
	BirthUTC   time.Time
	ChartLocal localtime.ChartTime

	JDUT          float64
	JDTT          float64
	DeltaTSeconds float64

	SolarYear       int
	LiChun          localtime.ChartTime
	MonthBoundaries [13]localtime.ChartTime
	MonthIndex      int
	DayOffset       sexagenary.Offset

	SolarTerms  []SolarTerm // nil when the window could not be computed
	Diagnostics Diagnostics
}
