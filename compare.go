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

import "gonum.org/v1/gonum/floats"

// floatTol is the tolerance used for comparisons of model quantities
// against thresholds.
const floatTol = 1e-14

func floatEq(a, b float64) bool {
	return floats.EqualWithinAbsOrRel(a, b, floatTol, floatTol)
}

func floatLE(a, b float64) bool { return a < b || floatEq(a, b) }

func floatGT(a, b float64) bool { return !floatLE(a, b) }
