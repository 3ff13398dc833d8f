package model

import (
	"fmt"
	"time"
)

// Timeframe selects how much history the price chart shows and how densely
// the backfill is sampled.
type Timeframe string

const (
	Timeframe1H Timeframe = "1H"
	Timeframe4H Timeframe = "4H"
	Timeframe1D Timeframe = "1D"
	Timeframe1W Timeframe = "1W"
)

func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case Timeframe1H, Timeframe4H, Timeframe1D, Timeframe1W:
		return Timeframe(s), nil
	default:
		return "", fmt.Errorf("unknown timeframe: %q", s)
	}
}

// Points is the size of the sliding price window for the timeframe.
func (tf Timeframe) Points() int {
	switch tf {
	case Timeframe4H:
		return 240
	case Timeframe1D:
		return 288 // every 5 minutes
	case Timeframe1W:
		return 168 // hourly for a week
	default:
		return 60
	}
}

// Step is the simulated spacing between backfilled points.
func (tf Timeframe) Step() time.Duration {
	switch tf {
	case Timeframe4H:
		return 4 * time.Minute
	case Timeframe1D:
		return 5 * time.Minute
	case Timeframe1W:
		return time.Hour
	default:
		return time.Minute
	}
}
