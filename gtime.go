// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"math"
	"time"
)

// Convert calendar date and time (UTC) to MJD. Returns the integer day and the seconds of that day.
func CalToMJD(year, month, day, hour, min int, sec float64) (int, float64) {
	is := math.Floor(sec)
	ns := int(math.Round((sec - is) * 1e9))
	t := time.Date(year, time.Month(month), day, hour, min, int(is), ns, time.UTC)
	u := t.Unix()
	d := u / 86400
	if u%86400 < 0 { // Dates before 1970 round toward minus infinity
		d -= 1
	}
	s := float64(u-d*86400) + float64(t.Nanosecond())/1e9
	return int(d) + MJD0, s
}

// Convert time to MJD
func TimeToMJD(t time.Time) float64 {
	t = t.UTC()
	d, s := CalToMJD(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), float64(t.Second())+float64(t.Nanosecond())/1e9)
	return float64(d) + s/SecPerDay
}

// Convert MJD to time (UTC). Rounded to microseconds.
func MJDToTime(mjd float64) time.Time {
	d := math.Floor(mjd)
	us := math.Round((mjd - d) * SecPerDay * 1e6)
	o := time.Unix((int64(d)-MJD0)*86400, 0).UTC()
	return o.Add(time.Duration(us) * time.Microsecond)
}
