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

// Package evap provides evapotranspiration formulations for a
// vegetated surface: the full Penman-Monteith combination equation,
// the Penman equilibrium rate, and the Priestley-Taylor approximation.
//
// All formulations take net radiation as a rate [MJ m-2 s-1] and return
// evaporation as a rate [mm s-1, equivalently kg m-2 s-1]. Converting
// to a daily or half-daily total is left to the caller.
package evap

import "gonum.org/v1/gonum/floats"

// gsTol is the tolerance below which a stomatal conductance is treated
// as zero.
const gsTol = 1e-14

// Conditions holds the atmospheric and surface conditions for one
// evaporation calculation.
type Conditions struct {
	NetRad float64 `desc:"Net radiation" units:"MJ m-2 s-1"`
	Tavg   float64 `desc:"Air temperature" units:"°C"`
	Press  float64 `desc:"Atmospheric pressure" units:"kPa"`
	VPD    float64 `desc:"Vapour pressure deficit" units:"kPa"`

	// Gs and Ga are only used by the full Penman-Monteith model.
	Gs float64 `desc:"Stomatal conductance" units:"m s-1"`
	Ga float64 `desc:"Boundary layer conductance" units:"m s-1"`
}

// Result holds the output of an evaporation calculation.
type Result struct {
	// Evap is the evaporation rate [mm s-1].
	Evap float64

	// Omega is the decoupling coefficient [0-1] (Jarvis & McNaughton
	// 1986). It is only set by the full Penman-Monteith model.
	Omega float64
}

// Model is implemented by evaporation formulations.
type Model interface {
	Evaporation(c Conditions) Result
}

// Thermo holds the thermodynamic terms that are shared by all of the
// evaporation formulations.
type Thermo struct {
	Slope  float64 // kPa °C-1
	Gamma  float64 // kPa °C-1
	Lambda float64 // MJ kg-1
}

// NewThermo calculates the thermodynamic terms for the given conditions.
func NewThermo(c Conditions) Thermo {
	return Thermo{
		Slope:  SatVapourSlope(c.Tavg),
		Gamma:  PsychrometricConstant(c.Tavg, c.Press),
		Lambda: LatentHeat(c.Tavg),
	}
}

// equilibrium returns the equilibrium evaporation rate [mm s-1] for
// net radiation rnet [MJ m-2 s-1].
func (t Thermo) equilibrium(rnet float64) float64 {
	return t.Slope / (t.Slope + t.Gamma) * rnet / t.Lambda
}

// PenmanMonteith is the full Penman-Monteith combination equation
// (Monteith and Unsworth 1990).
type PenmanMonteith struct{}

// Evaporation implements Model. If the stomatal conductance is not
// positive to within gsTol, evaporation and the decoupling coefficient
// are both zero.
func (PenmanMonteith) Evaporation(c Conditions) Result {
	if c.Gs < 0 || floats.EqualWithinAbsOrRel(c.Gs, 0, gsTol, gsTol) {
		return Result{}
	}
	t := NewThermo(c)
	e := t.Slope / t.Gamma
	omega := (e + 1) / (e + 1 + c.Ga/c.Gs)

	num := t.Slope*c.NetRad + AirDensity(c.Tavg)*Cp*c.VPD*c.Ga
	den := t.Slope + t.Gamma*(1+c.Ga/c.Gs)
	return Result{Evap: num / den / t.Lambda, Omega: omega}
}

// CanopyConductance inverts the Penman-Monteith equation to estimate the
// canopy conductance [m s-1] that would produce the transpiration
// rate trans [mm s-1] under conditions c. c.Gs is ignored.
func (PenmanMonteith) CanopyConductance(c Conditions, trans float64) float64 {
	t := NewThermo(c)
	num := c.Ga * t.Gamma * t.Lambda * trans
	den := t.Slope*c.NetRad - (t.Slope+t.Gamma)*t.Lambda*trans +
		c.Ga*AirDensity(c.Tavg)*Cp*c.VPD
	return num / den
}

// Penman is the Penman equilibrium evaporation rate, i.e. the
// Penman-Monteith rate in the limit of zero aerodynamic conductance.
type Penman struct{}

// Evaporation implements Model.
func (Penman) Evaporation(c Conditions) Result {
	return Result{Evap: NewThermo(c).equilibrium(c.NetRad)}
}

// DefaultPriestleyTaylorCoeff is the Priestley-Taylor coefficient for a
// well-watered surface.
const DefaultPriestleyTaylorCoeff = 1.26

// PriestleyTaylor is the Priestley-Taylor (1972) approximation to
// potential evaporation.
type PriestleyTaylor struct {
	// Coeff is the Priestley-Taylor α. Zero means
	// DefaultPriestleyTaylorCoeff.
	Coeff float64
}

// Evaporation implements Model.
func (pt PriestleyTaylor) Evaporation(c Conditions) Result {
	alpha := pt.Coeff
	if alpha == 0 {
		alpha = DefaultPriestleyTaylorCoeff
	}
	return Result{Evap: alpha * NewThermo(c).equilibrium(c.NetRad)}
}
