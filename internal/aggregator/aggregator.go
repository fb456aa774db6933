package aggregator

import (
	"sort"

	"github.com/pable/go-shotmap/internal/model"
)

// Summarize computes the DatasetSummary for a shot collection in one pass.
// Pure function; safe on an empty collection (average 0, explicit empty
// bounds rather than ±Inf).
func Summarize(shots []model.ShotRecord) model.DatasetSummary {
	s := model.DatasetSummary{Bounds: model.Bounds{Empty: true}}
	if len(shots) == 0 {
		return s
	}

	teams := make(map[string]struct{})
	periods := make(map[int]struct{})
	shotTypes := make(map[string]struct{})

	b := model.Bounds{
		XMin: shots[0].X, XMax: shots[0].X,
		YMin: shots[0].Y, YMax: shots[0].Y,
	}
	s.MinXG, s.MaxXG = shots[0].XG, shots[0].XG

	for i := range shots {
		sh := &shots[i]
		s.TotalCount++
		s.TotalXG += sh.XG

		if sh.TeamID != "" {
			teams[sh.TeamID] = struct{}{}
		}
		if sh.Period != 0 {
			periods[sh.Period] = struct{}{}
		}
		if sh.ShotType != "" {
			shotTypes[sh.ShotType] = struct{}{}
		}

		if sh.X < b.XMin {
			b.XMin = sh.X
		}
		if sh.X > b.XMax {
			b.XMax = sh.X
		}
		if sh.Y < b.YMin {
			b.YMin = sh.Y
		}
		if sh.Y > b.YMax {
			b.YMax = sh.Y
		}
		if sh.XG < s.MinXG {
			s.MinXG = sh.XG
		}
		if sh.XG > s.MaxXG {
			s.MaxXG = sh.XG
		}
	}

	s.AverageXG = s.TotalXG / float64(s.TotalCount)
	s.Bounds = b

	s.Teams = sortedStrings(teams)
	s.ShotTypes = sortedStrings(shotTypes)
	s.Periods = make([]int, 0, len(periods))
	for p := range periods {
		s.Periods = append(s.Periods, p)
	}
	sort.Ints(s.Periods)

	return s
}

// SummarizeTeams rolls shots up per team, sorted by shot count descending for
// stable report output. Shots without a team land under "?".
func SummarizeTeams(shots []model.ShotRecord) []model.TeamSummary {
	accum := make(map[string]*model.TeamSummary)
	for i := range shots {
		sh := &shots[i]
		team := sh.TeamID
		if team == "" {
			team = "?"
		}
		ts := accum[team]
		if ts == nil {
			ts = &model.TeamSummary{TeamID: team}
			accum[team] = ts
		}
		ts.Shots++
		ts.TotalXG += sh.XG
		if sh.Goal {
			ts.Goals++
		}
	}

	out := make([]model.TeamSummary, 0, len(accum))
	for _, ts := range accum {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Shots != out[j].Shots {
			return out[i].Shots > out[j].Shots
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
