package clock

import "time"

// Clock hands out the current wall time in the configured local zone. The
// rest of the code never touches time.Now directly, so date-boundary
// behavior (midnight rollover) is testable.
type Clock interface {
	Now() time.Time
}

type localClock struct {
	loc *time.Location
}

// NewLocal builds a Clock for an IANA zone name, e.g. "America/Lima".
func NewLocal(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &localClock{loc: loc}, nil
}

func (c *localClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	t time.Time
}

// Fixed returns a Clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
