/*
Copyright © 2018 the ForestWater authors.
This file is part of ForestWater.

ForestWater is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ForestWater is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ForestWater.  If not, see <http://www.gnu.org/licenses/>.
*/
package forestwater

import (
	"math"
	"time"
)

// DayLength returns the day length [hours] on day of year doy (1 = 1
// January) in a year with yearDays days at the given latitude [degrees]
// (Leuning et al. 1995, eqns A4-A6). Inside the polar circles the result
// is limited to the range [0, 24].
func DayLength(doy, yearDays int, latitude float64) float64 {
	const deg2rad = math.Pi / 180
	latr := latitude * deg2rad
	sindec := -math.Sin(23.5*deg2rad) * math.Cos(2*math.Pi*(float64(doy)+10)/float64(yearDays))
	a := math.Sin(latr) * sindec
	b := math.Cos(latr) * math.Cos(math.Asin(sindec))
	return 12 * (1 + (2/math.Pi)*math.Asin(clip(a/b, -1, 1)))
}

// DayLengthOn returns the day length [hours] on the date of t at the
// given latitude [degrees].
func DayLengthOn(t time.Time, latitude float64) float64 {
	return DayLength(t.YearDay(), daysInYear(t.Year()), latitude)
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
