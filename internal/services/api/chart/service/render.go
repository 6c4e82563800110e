package service

import (
	"time"

	"bazi/internal/core/chart"
	"bazi/internal/core/localtime"
	"bazi/internal/core/sexagenary"
	"bazi/internal/services/api/chart/domain"
)

// Render maps an engine result to its wire form with names in script
func Render(res *chart.Result, script sexagenary.Script) domain.ChartResponse {
	return toChartResponse(res, sexagenary.NamesFor(script))
}

func toChartResponse(res *chart.Result, names sexagenary.Names) domain.ChartResponse {
	p := res.Pillars
	out := domain.ChartResponse{
		Key:     res.Key,
		Input:   echo(res),
		Backend: res.Backend,
		Script:  names.Script().String(),
		Text: names.Pillar(p.Year) + " " + names.Pillar(p.Month) + " " +
			names.Pillar(p.Day) + " " + names.Pillar(p.Hour),
		Pillars: domain.Pillars{
			Year:  pillarView(p.Year, names),
			Month: pillarView(p.Month, names),
			Day:   pillarView(p.Day, names),
			Hour:  pillarView(p.Hour, names),
		},
		BirthLocal:      res.BirthLocal.Format(time.RFC3339Nano),
		BirthUTC:        res.BirthUTC.Format(time.RFC3339Nano),
		ChartLocal:      res.ChartLocal.String(),
		JDUT:            res.JDUT,
		JDTT:            res.JDTT,
		DeltaTSeconds:   res.DeltaTSeconds,
		SolarYear:       res.SolarYear,
		MonthIndex:      res.MonthIndex,
		DayOffset:       int(res.DayOffset),
		LiChun:          instant(res.LiChun),
		MonthBoundaries: make([]domain.Instant, len(res.MonthBoundaries)),
		SolarTermCount:  len(res.SolarTerms),
		SolarTerms:      termViews(res.SolarTerms, names),
		Diagnostics:     domain.Diagnostics{SolarTermsError: res.Diagnostics.SolarTermsError},
	}
	for k, b := range res.MonthBoundaries {
		out.MonthBoundaries[k] = instant(b)
	}
	return out
}

func pillarView(p sexagenary.Pillar, names sexagenary.Names) domain.PillarView {
	return domain.PillarView{
		Text:          names.Pillar(p),
		Stem:          names.Stem(p.Stem),
		Branch:        names.Branch(p.Branch),
		StemIndex:     p.Stem,
		BranchIndex:   p.Branch,
		CycleIndex:    p.Index60(),
		StemElement:   names.Element(sexagenary.StemElement(p.Stem)),
		BranchElement: names.Element(sexagenary.BranchElement(p.Branch)),
		Animal:        sexagenary.BranchAnimal(p.Branch),
		Yang:          sexagenary.StemYang(p.Stem),
	}
}

func instant(c localtime.ChartTime) domain.Instant {
	return domain.Instant{UTC: c.UTC.Format(time.RFC3339Nano), Local: c.String()}
}

func termViews(terms []chart.SolarTerm, names sexagenary.Names) []domain.SolarTermView {
	if terms == nil {
		return nil
	}
	out := make([]domain.SolarTermView, len(terms))
	for i, t := range terms {
		out[i] = domain.SolarTermView{
			Index:     t.Index,
			Name:      names.Term(t.Index),
			TargetDeg: t.TargetDeg,
			Jie:       sexagenary.IsJie(t.Index),
			Instant:   instant(t.Local),
		}
	}
	return out
}

// echo is the request as the engine saw it, defaults applied
func echo(res *chart.Result) domain.ChartRequest {
	in := res.Input
	strict := in.Strict
	out := domain.ChartRequest{
		BirthLocal:      in.BirthLocal,
		Timezone:        in.Timezone,
		Longitude:       in.Longitude,
		Latitude:        in.Latitude,
		Standard:        string(in.Standard),
		DayBoundary:     string(in.DayBoundary),
		Strict:          &strict,
		Fold:            int(in.Fold),
		AccuracySeconds: in.Accuracy.Seconds(),
		Backend:         res.Backend,
	}
	if a := in.Anchor; a != nil {
		out.Anchor = &domain.AnchorInput{
			Date:  time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly),
			Index: a.Index,
		}
	}
	return out
}
