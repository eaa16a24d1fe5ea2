package session

import "fmt"

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns how much of the session has elapsed, from 0 to 100.
func Progress(remaining, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	p := float64(duration-remaining) / float64(duration) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
