// Package domain holds the batch job file model
package domain

import (
	"time"

	"bazi/internal/core/chart"
	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	perr "bazi/internal/platform/errors"
)

// Job is one batch file: shared defaults and the charts to compute
//
//	defaults:
//	  timezone: Europe/Berlin
//	  standard: LMT
//	charts:
//	  - id: ada
//	    birth_local: 2024-02-10T14:30:00
//	    longitude: 13.405
type Job struct {
	Defaults Entry   `yaml:"defaults"`
	Charts   []Entry `yaml:"charts"`
}

// Anchor pins the day cycle for one entry
type Anchor struct {
	Date  string `yaml:"date"  validate:"required"`
	Index int    `yaml:"index" validate:"min=0,max=59"`
}

// Entry is one chart request; zero fields fall back to the job defaults
type Entry struct {
	ID              string   `yaml:"id"`
	BirthLocal      string   `yaml:"birth_local"      validate:"required"`
	Timezone        string   `yaml:"timezone"         validate:"required"`
	Longitude       *float64 `yaml:"longitude"        validate:"omitempty,min=-180,max=180"`
	Latitude        *float64 `yaml:"latitude"         validate:"omitempty,min=-90,max=90"`
	Standard        string   `yaml:"standard"         validate:"omitempty,oneof=CIVIL LMT civil lmt"`
	DayBoundary     string   `yaml:"day_boundary"     validate:"omitempty,oneof=midnight zi"`
	Strict          *bool    `yaml:"strict"`
	Fold            *int     `yaml:"fold"             validate:"omitempty,oneof=0 1"`
	AccuracySeconds float64  `yaml:"accuracy_seconds" validate:"omitempty,gt=0,max=3600"`
	Anchor          *Anchor  `yaml:"anchor"`
	Backend         string   `yaml:"backend"          validate:"omitempty,max=64"`
}

// Merge fills the zero fields of e from def
func (e Entry) Merge(def Entry) Entry {
	if e.Timezone == "" {
		e.Timezone = def.Timezone
	}
	if e.Longitude == nil {
		e.Longitude = def.Longitude
	}
	if e.Latitude == nil {
		e.Latitude = def.Latitude
	}
	if e.Standard == "" {
		e.Standard = def.Standard
	}
	if e.DayBoundary == "" {
		e.DayBoundary = def.DayBoundary
	}
	if e.Strict == nil {
		e.Strict = def.Strict
	}
	if e.Fold == nil {
		e.Fold = def.Fold
	}
	if e.AccuracySeconds == 0 {
		e.AccuracySeconds = def.AccuracySeconds
	}
	if e.Anchor == nil {
		e.Anchor = def.Anchor
	}
	if e.Backend == "" {
		e.Backend = def.Backend
	}
	return e
}

// Input converts a merged entry to an engine input; strict defaults to true
func (e Entry) Input() (chart.Input, error) {
	in := chart.Input{
		BirthLocal:  e.BirthLocal,
		Timezone:    e.Timezone,
		Standard:    localtime.Standard(e.Standard),
		DayBoundary: localtime.DayBoundary(e.DayBoundary),
		Strict:      true,
		Accuracy:    time.Duration(e.AccuracySeconds * float64(time.Second)),
		Backend:     e.Backend,
	}
	if e.Longitude != nil {
		in.Longitude = *e.Longitude
	}
	if e.Latitude != nil {
		in.Latitude = *e.Latitude
	}
	if e.Strict != nil {
		in.Strict = *e.Strict
	}
	if e.Fold != nil {
		in.Fold = localtime.Fold(*e.Fold)
	}
	if e.Anchor != nil {
		a, err := sexagenary.ParseAnchor(e.Anchor.Date, e.Anchor.Index)
		if err != nil {
			return chart.Input{}, perr.WithOpIfEmpty(err, string(chart.StageParseInput))
		}
		in.Anchor = &a
	}
	return in, nil
}

// Result is the outcome of one entry; exactly one of Chart and Err is set
type Result struct {
	Index int
	ID    string
	Chart *chart.Result
	Err   error
}

// Summary counts the outcomes of a run
type Summary struct {
	Total  int
	OK     int
	Failed int
	Took   time.Duration
}
