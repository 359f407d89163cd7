package schedule

import (
	"testing"
	"time"

	"alcyxob/workout-planner/internal/domain"

	"github.com/stretchr/testify/require"
)

const (
	alice = "owner-alice"
	bob   = "owner-bob"
)

var createdAt = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newSeries(id, owner, anchor string, r domain.Repeat) domain.Series {
	return domain.Series{
		ID:         id,
		OwnerID:    owner,
		AnchorDate: day(anchor),
		Repeat:     r,
		Payload:    domain.Payload{Name: "Workout " + id},
		CreatedAt:  createdAt,
	}
}

// stateWith creates the given series one by one, failing the test on error.
func stateWith(t *testing.T, series ...domain.Series) State {
	t.Helper()
	st := NewState()
	for _, s := range series {
		c, err := Create(st, s)
		require.NoError(t, err)
		st = c.State
	}
	return st
}

func mustGet(t *testing.T, st State, owner, id string) domain.Series {
	t.Helper()
	s, ok := st.Get(owner, id)
	require.True(t, ok, "series %s/%s not found", owner, id)
	return s
}

// occurrenceDates lists the dates in [from, to] on which s occurs.
func occurrenceDates(s domain.Series, from, to string) []string {
	out := []string{}
	for d := day(from); !d.After(day(to)); d = d.AddDays(1) {
		if domain.OccursOn(s, d) {
			out = append(out, d.String())
		}
	}
	return out
}
