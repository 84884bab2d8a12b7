package utils

import (
	"fmt"
	"time"
)

const absoluteLayout = "15:04:05, 02 Jan, 2006"

// TimeText renders a timestamp the way case embeds display it: a coarse
// relative form followed by the absolute time.
func TimeText(t, now time.Time) string {
	return fmt.Sprintf("%s; %s", Relative(t, now), t.UTC().Format(absoluteLayout))
}

// Relative renders how long ago t was, at the coarsest sensible unit.
func Relative(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return plural(int(d.Seconds()), "second")
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
