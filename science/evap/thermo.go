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

package evap

import (
	"fmt"
	"math"
)

// Physical constants.
const (
	// Cp is the specific heat of air at constant pressure [MJ kg-1 °C-1].
	Cp = 1.013e-3

	// VonKarman is the von Kármán constant [-].
	VonKarman = 0.41

	// Epsilon is the ratio of the molecular weight of water vapour to
	// that of dry air [-].
	Epsilon = 0.6222

	// DefaultElevation is the site elevation used when none is given [m].
	DefaultElevation = 125.
)

// SatVapourSlope returns the slope of the saturation vapour pressure
// curve at air temperature tavg [°C], in kPa °C-1 (FAO-56, eq. 13).
func SatVapourSlope(tavg float64) float64 {
	t := tavg + 237.3
	return 4098. * (0.6108 * math.Exp(17.27*tavg/t)) / (t * t)
}

// LatentHeat returns the latent heat of vaporisation of water
// [MJ kg-1] at temperature tavg [°C].
func LatentHeat(tavg float64) float64 {
	return 2.501 - 0.002361*tavg
}

// PsychrometricConstant returns the psychrometric constant [kPa °C-1]
// at temperature tavg [°C] and atmospheric pressure press [kPa].
func PsychrometricConstant(tavg, press float64) float64 {
	return Cp * press / (Epsilon * LatentHeat(tavg))
}

// AirDensity returns the density of air [kg m-3] at temperature tavg [°C].
func AirDensity(tavg float64) float64 {
	return 1.292 - 0.00428*tavg
}

// AtmosPressure estimates atmospheric pressure [kPa] from elevation [m]
// using a standard atmosphere (FAO-56, eq. 7).
func AtmosPressure(elevation float64) float64 {
	return 101.3 * math.Pow((293.-0.0065*elevation)/293., 5.26)
}

// Canopy holds the canopy roughness properties needed to calculate
// aerodynamic exchange. All fields are ratios.
type Canopy struct {
	// Dz0vDh is the ratio of the momentum roughness length to canopy height.
	Dz0vDh float64

	// DisplaceRatio is the ratio of the zero plane displacement height to
	// canopy height.
	DisplaceRatio float64

	// Z0hZ0m is the ratio of the heat to momentum roughness lengths.
	Z0hZ0m float64
}

// DefaultCanopy holds typical roughness ratios for a forest canopy
// (Jarvis et al. 1976; Garratt 1992).
var DefaultCanopy = Canopy{Dz0vDh: 0.1, DisplaceRatio: 0.67, Z0hZ0m: 1}

// BoundaryLayerConductance returns the canopy boundary layer conductance
// [m s-1] for wind speed wind [m s-1] over a canopy of height canht [m],
// assuming a neutral log wind profile measured at canopy height.
func (c Canopy) BoundaryLayerConductance(wind, canht float64) (float64, error) {
	if canht <= 0 {
		return 0, fmt.Errorf("evap: boundary layer conductance: canopy height %g m must be positive", canht)
	}
	z0m := c.Dz0vDh * canht
	z0h := c.Z0hZ0m * z0m
	d := c.DisplaceRatio * canht
	arg1 := math.Log((canht - d) / z0m)
	arg2 := math.Log((canht - d) / z0h)
	ga := VonKarman * VonKarman * wind / (arg1 * arg2)
	if math.IsNaN(ga) || math.IsInf(ga, 0) {
		return 0, fmt.Errorf("evap: boundary layer conductance: degenerate canopy roughness %+v", c)
	}
	return ga, nil
}
