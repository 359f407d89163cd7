// internal/schedule/matcher.go
package schedule

import (
	"sort"
	"strings"

	"alcyxob/workout-planner/internal/domain"
)

// MatchReason tells which rule picked the series.
type MatchReason string

const (
	MatchNone     MatchReason = ""
	MatchTemplate MatchReason = "template"
	MatchName     MatchReason = "name"
	MatchSole     MatchReason = "sole_candidate"
)

// PerformedWorkout describes a workout that was actually done.
type PerformedWorkout struct {
	Date       domain.Date
	TemplateID string
	Name       string
}

// MatchResult is what MatchAndComplete decided.
type MatchResult struct {
	SeriesID       string
	Reason         MatchReason
	NewlyCompleted bool
}

func (r MatchResult) Matched() bool {
	return r.Reason != MatchNone
}

// Match picks the scheduled series a performed workout satisfies, first rule wins:
//  1. a candidate with the same template id
//  2. a candidate whose name equals the workout name (trimmed, case-insensitive)
//  3. the only candidate of the day
//
// Candidates are the owner's series occurring on the date, uncompleted ones
// first. Rule 3 can attribute an unrelated workout to the day's only plan;
// that is accepted behaviour.
func Match(st State, ownerID string, w PerformedWorkout) (domain.Series, MatchReason) {
	occs := OccurrencesOnDate(st, ownerID, w.Date)
	if len(occs) == 0 {
		return domain.Series{}, MatchNone
	}
	sort.SliceStable(occs, func(i, j int) bool {
		return !occs[i].Completed && occs[j].Completed
	})

	if tid := strings.TrimSpace(w.TemplateID); tid != "" {
		for _, o := range occs {
			if o.Series.Payload.TemplateID == tid {
				return o.Series, MatchTemplate
			}
		}
	}
	if name := normalizeName(w.Name); name != "" {
		for _, o := range occs {
			if normalizeName(o.Series.Payload.Name) == name {
				return o.Series, MatchName
			}
		}
	}
	if len(occs) == 1 {
		return occs[0].Series, MatchSole
	}
	return domain.Series{}, MatchNone
}

// MatchAndComplete runs Match and marks the chosen occurrence complete. When
// nothing matches the commit is empty and no ledger entry is created.
func MatchAndComplete(st State, ownerID string, w PerformedWorkout) (Commit, MatchResult, error) {
	if ownerID == "" {
		return Commit{}, MatchResult{}, ErrOwnerRequired
	}
	if !w.Date.IsValid() {
		return Commit{}, MatchResult{}, domain.ErrInvalidDate
	}
	s, reason := Match(st, ownerID, w)
	if reason == MatchNone {
		return Commit{State: st}, MatchResult{}, nil
	}
	commit, changed, err := MarkComplete(st, ownerID, s.ID, w.Date)
	if err != nil {
		return Commit{}, MatchResult{}, err
	}
	return commit, MatchResult{SeriesID: s.ID, Reason: reason, NewlyCompleted: changed}, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
