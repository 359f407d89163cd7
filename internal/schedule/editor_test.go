package schedule

import (
	"testing"
	"time"

	"alcyxob/workout-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var splitRef = NewSeriesRef{ID: "split", Now: createdAt.Add(time.Hour)}

func TestParseScope(t *testing.T) {
	for raw, want := range map[string]Scope{"one": ScopeOne, " Forward ": ScopeForward, "ALL": ScopeAll} {
		got, err := ParseScope(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	_, err := ParseScope("some")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestDeleteOccurrence_One(t *testing.T) {
	// Weekly on Mondays from 2024-01-01.
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, _, err := Toggle(st, alice, "a", day("2024-01-15"))
	require.NoError(t, err)

	before := occurrenceDates(mustGet(t, c.State, alice, "a"), "2024-01-01", "2024-02-29")

	c, err = DeleteOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeOne)
	require.NoError(t, err)
	s := mustGet(t, c.State, alice, "a")

	after := occurrenceDates(s, "2024-01-01", "2024-02-29")
	assert.NotContains(t, after, "2024-01-15")
	assert.Len(t, after, len(before)-1)
	for _, d := range before {
		if d != "2024-01-15" {
			assert.Contains(t, after, d)
		}
	}
	assert.False(t, s.IsCompleted(day("2024-01-15")), "completion of a deleted occurrence is dropped")

	_, err = DeleteOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeOne)
	assert.ErrorIs(t, err, ErrNoOccurrence)
	_, err = DeleteOccurrence(c.State, alice, "a", day("2024-01-16"), ScopeOne)
	assert.ErrorIs(t, err, ErrNoOccurrence)
}

func TestDeleteOccurrence_OneOnNeverRemovesSeries(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Never()))
	c, err := DeleteOccurrence(st, alice, "a", day("2024-01-01"), ScopeOne)
	require.NoError(t, err)
	assert.Len(t, c.Deleted, 1)
	assert.Empty(t, c.State.ListForOwner(alice))
}

func TestDeleteOccurrence_Forward(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, _, err := Toggle(st, alice, "a", day("2024-01-08"))
	require.NoError(t, err)
	c, _, err = Toggle(c.State, alice, "a", day("2024-01-22"))
	require.NoError(t, err)

	c, err = DeleteOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeForward)
	require.NoError(t, err)
	s := mustGet(t, c.State, alice, "a")

	assert.Equal(t, []string{"2024-01-01", "2024-01-08"}, occurrenceDates(s, "2024-01-01", "2024-12-31"))
	require.NotNil(t, s.Until)
	assert.Equal(t, day("2024-01-14"), *s.Until)
	assert.True(t, s.IsCompleted(day("2024-01-08")))
	assert.False(t, s.IsCompleted(day("2024-01-22")))
}

func TestDeleteOccurrence_ForwardFromAnchorDeletesAll(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, err := DeleteOccurrence(st, alice, "a", day("2024-01-01"), ScopeForward)
	require.NoError(t, err)
	assert.Len(t, c.Deleted, 1)
	assert.Equal(t, 0, c.State.Count())
}

func TestDeleteOccurrence_All(t *testing.T) {
	st := stateWith(t,
		newSeries("a", alice, "2024-01-01", domain.Weekly()),
		newSeries("b", alice, "2024-01-01", domain.Daily()),
	)
	c, err := DeleteOccurrence(st, alice, "a", day("2024-01-08"), ScopeAll)
	require.NoError(t, err)
	list := c.State.ListForOwner(alice)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}

func TestEditOccurrence_OneSplitsOffOneOff(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, _, err := Toggle(st, alice, "a", day("2024-01-15"))
	require.NoError(t, err)

	name := "Deload"
	c, err = EditOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeOne,
		domain.SeriesPatch{Name: &name, Time: &domain.ClockTime{Hour: 19, Minute: 30}}, splitRef)
	require.NoError(t, err)
	require.Len(t, c.Upserted, 2)

	orig := mustGet(t, c.State, alice, "a")
	assert.Equal(t, "Workout a", orig.Payload.Name)
	assert.False(t, domain.OccursOn(orig, day("2024-01-15")))
	assert.True(t, domain.OccursOn(orig, day("2024-01-22")))
	assert.False(t, orig.IsCompleted(day("2024-01-15")))

	oneOff := mustGet(t, c.State, alice, "split")
	assert.Equal(t, "Deload", oneOff.Payload.Name)
	assert.Equal(t, domain.Never(), oneOff.Repeat)
	assert.Equal(t, day("2024-01-15"), oneOff.AnchorDate)
	assert.Equal(t, &domain.ClockTime{Hour: 19, Minute: 30}, oneOff.Time)
	assert.True(t, oneOff.IsCompleted(day("2024-01-15")), "completion moves with the occurrence")
	assert.Equal(t, splitRef.Now, oneOff.CreatedAt)
	assert.Equal(t, []string{"2024-01-15"}, occurrenceDates(oneOff, "2024-01-01", "2024-12-31"))

	// Exactly one occurrence on the edited day.
	assert.Len(t, OccurrencesOnDate(c.State, alice, day("2024-01-15")), 1)
}

func TestEditOccurrence_OneOnNeverIsInPlace(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-03-10", domain.Never()))
	name := "Moved"
	c, err := EditOccurrence(st, alice, "a", day("2024-03-10"), ScopeOne, domain.SeriesPatch{Name: &name}, NewSeriesRef{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.State.Count())
	assert.Equal(t, "Moved", mustGet(t, c.State, alice, "a").Payload.Name)
}

func TestEditOccurrence_OneRejectsRecurringRule(t *testing.T) {
	st := stateWith(t,
		newSeries("a", alice, "2024-03-10", domain.Never()),
		newSeries("b", alice, "2024-01-01", domain.Weekly()),
	)
	daily := domain.Daily()

	_, err := EditOccurrence(st, alice, "a", day("2024-03-10"), ScopeOne, domain.SeriesPatch{Repeat: &daily}, splitRef)
	assert.ErrorIs(t, err, domain.ErrInvalidRepeat)
	_, err = EditOccurrence(st, alice, "b", day("2024-01-15"), ScopeOne, domain.SeriesPatch{Repeat: &daily}, splitRef)
	assert.ErrorIs(t, err, domain.ErrInvalidRepeat)
	assert.Equal(t, domain.Never(), mustGet(t, st, alice, "a").Repeat)

	// Never is what the occurrence already is.
	never := domain.Never()
	c, err := EditOccurrence(st, alice, "a", day("2024-03-10"), ScopeOne, domain.SeriesPatch{Repeat: &never}, splitRef)
	require.NoError(t, err)
	assert.Equal(t, domain.Never(), mustGet(t, c.State, alice, "a").Repeat)
}

func TestEditOccurrence_ForwardSplit(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, _, err := Toggle(st, alice, "a", day("2024-01-08"))
	require.NoError(t, err)
	c, _, err = Toggle(c.State, alice, "a", day("2024-01-29"))
	require.NoError(t, err)

	name := "Heavier"
	c, err = EditOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeForward, domain.SeriesPatch{Name: &name}, splitRef)
	require.NoError(t, err)

	orig := mustGet(t, c.State, alice, "a")
	tail := mustGet(t, c.State, alice, "split")

	// The original has nothing from the split date on.
	assert.Equal(t, []string{"2024-01-01", "2024-01-08"}, occurrenceDates(orig, "2024-01-01", "2024-12-31"))
	assert.Equal(t, "Workout a", orig.Payload.Name)
	assert.True(t, orig.IsCompleted(day("2024-01-08")))

	// The new series starts at the split date with the same cadence.
	assert.Equal(t, day("2024-01-15"), tail.AnchorDate)
	assert.Equal(t, domain.Weekly(), tail.Repeat)
	assert.Equal(t, "Heavier", tail.Payload.Name)
	assert.Equal(t, []string{"2024-01-15", "2024-01-22", "2024-01-29", "2024-02-05"},
		occurrenceDates(tail, "2024-01-01", "2024-02-10"))
	assert.Zero(t, tail.CompletedDates.Len())
	assert.Nil(t, tail.Until)

	// No day gets two occurrences and none is lost.
	for d := day("2024-01-01"); d.Before(day("2024-04-01")); d = d.AddDays(1) {
		want := 0
		if domain.DaysBetween(day("2024-01-01"), d)%7 == 0 {
			want = 1
		}
		assert.Len(t, OccurrencesOnDate(c.State, alice, d), want, d.String())
	}
}

func TestEditOccurrence_ForwardCanChangeRepeat(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	daily := domain.Daily()
	c, err := EditOccurrence(st, alice, "a", day("2024-01-15"), ScopeForward, domain.SeriesPatch{Repeat: &daily}, splitRef)
	require.NoError(t, err)

	tail := mustGet(t, c.State, alice, "split")
	assert.Equal(t, domain.Daily(), tail.Repeat)
	assert.Equal(t, []string{"2024-01-15", "2024-01-16", "2024-01-17"}, occurrenceDates(tail, "2024-01-10", "2024-01-17"))
	assert.Equal(t, domain.Weekly(), mustGet(t, c.State, alice, "a").Repeat)
}

func TestEditOccurrence_ForwardKeepsEarlierBound(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	c, err := DeleteOccurrence(st, alice, "a", day("2024-02-05"), ScopeForward)
	require.NoError(t, err)

	c, err = EditOccurrence(c.State, alice, "a", day("2024-01-15"), ScopeForward, domain.SeriesPatch{}, splitRef)
	require.NoError(t, err)

	tail := mustGet(t, c.State, alice, "split")
	assert.Equal(t, []string{"2024-01-15", "2024-01-22", "2024-01-29"}, occurrenceDates(tail, "2024-01-01", "2024-12-31"))
}

func TestEditOccurrence_ForwardAtAnchorUpdatesInPlace(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	name := "Renamed"
	c, err := EditOccurrence(st, alice, "a", day("2024-01-01"), ScopeForward, domain.SeriesPatch{Name: &name}, splitRef)
	require.NoError(t, err)
	assert.Equal(t, 1, c.State.Count())
	assert.Equal(t, "Renamed", mustGet(t, c.State, alice, "a").Payload.Name)
}

func TestEditOccurrence_All(t *testing.T) {
	st := stateWith(t, newSeries("a", alice, "2024-01-01", domain.Weekly()))
	biweekly := domain.Biweekly()
	c, err := EditOccurrence(st, alice, "a", day("2024-01-08"), ScopeAll, domain.SeriesPatch{Repeat: &biweekly}, NewSeriesRef{})
	require.NoError(t, err)

	s := mustGet(t, c.State, alice, "a")
	assert.Equal(t, day("2024-01-01"), s.AnchorDate)
	assert.Equal(t, []string{"2024-01-01", "2024-01-15", "2024-01-29"}, occurrenceDates(s, "2024-01-01", "2024-02-04"))
}

func TestEditOccurrence_Errors(t *testing.T) {
	st := stateWith(t,
		newSeries("a", alice, "2024-01-01", domain.Weekly()),
		newSeries("split", alice, "2024-01-01", domain.Daily()),
	)
	empty := ""

	_, err := EditOccurrence(st, alice, "a", day("2024-01-08"), ScopeOne, domain.SeriesPatch{Name: &empty}, NewSeriesRef{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = EditOccurrence(st, alice, "a", day("2024-01-08"), ScopeOne, domain.SeriesPatch{}, NewSeriesRef{})
	assert.ErrorIs(t, err, ErrIDRequired)

	_, err = EditOccurrence(st, alice, "a", day("2024-01-08"), ScopeOne, domain.SeriesPatch{}, splitRef)
	assert.ErrorIs(t, err, ErrDuplicateSeries)

	_, err = EditOccurrence(st, alice, "a", day("2024-01-09"), ScopeForward, domain.SeriesPatch{}, NewSeriesRef{ID: "x"})
	assert.ErrorIs(t, err, ErrNoOccurrence)

	_, err = EditOccurrence(st, alice, "a", day("2024-01-08"), Scope("sometimes"), domain.SeriesPatch{}, NewSeriesRef{ID: "x"})
	assert.ErrorIs(t, err, ErrInvalidScope)
}
