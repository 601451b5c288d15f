package domain

import "time"

// Clock abstracts the time source so aggregate guards stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
