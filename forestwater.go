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
// Package forestwater is the daily water-balance submodel of a forest
// ecosystem model. It partitions rainfall into interception, canopy
// transpiration, soil evaporation and runoff, and tracks plant-available
// water in a two-layer "leaky bucket" soil whose dryness feeds back to
// the vegetation through water-stress factors.
//
// A simulation of one site is set up with NewSite and driven one day at
// a time by the functions in its RunFuncs, in the same way as any other
// chain of SiteManipulators. Independent sites can be run concurrently
// with RunSites.
package forestwater

// Version gives the version number.
const Version = "0.3.0"

// Unit conversions.
const (
	wattHrToMJ   = 0.0036   // W h to MJ
	mmToM        = 0.001    // mm to m
	rgas         = 8.314    // universal gas constant [J mol-1 K-1]
	degToKelvin  = 273.15   // °C to K
	molToUmol    = 1e6      // mol to µmol
	gramsCToMolC = 1 / 12.0 // g C to mol C
	secPerHour   = 3600.0
)
