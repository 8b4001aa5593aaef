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

package soil

import (
	"fmt"
	"math"
)

// Soil water potentials that bound plant-available water [m head].
const (
	wiltingPointHead  = -152.9 // -1.5 MPa
	fieldCapacityHead = -3.364 // -0.033 MPa
)

// headToMPa converts a water potential in metres of head to MPa.
const headToMPa = 9.81 * 0.001

// Hydraulics holds soil hydraulic properties.
type Hydraulics struct {
	ThetaFC  float64 `desc:"Volumetric water content at field capacity" units:"m3 m-3"`
	ThetaWP  float64 `desc:"Volumetric water content at wilting point" units:"m3 m-3"`
	ThetaSat float64 `desc:"Volumetric water content at saturation" units:"m3 m-3"`
	B        float64 `desc:"Clapp-Hornberger b exponent" units:"-"`
	PsiSat   float64 `desc:"Soil water potential at saturation" units:"MPa"`
}

// CalcHydraulics estimates hydraulic properties from texture fractions
// using the Cosby et al. (1984) regressions with the
// Clapp and Hornberger (1978) retention curve.
func CalcHydraulics(f Fractions) Hydraulics {
	b := 3.1 + 15.7*f.Clay - 0.3*f.Sand

	// Cosby gives psi_sat in cm of head.
	psiSat := -math.Pow(10, 1.54-0.95*f.Sand+0.63*f.Silt) * 0.01

	thetaSat := 0.505 - 0.037*f.Clay - 0.142*f.Sand

	return Hydraulics{
		ThetaWP:  thetaSat * math.Pow(psiSat/wiltingPointHead, 1/b),
		ThetaFC:  thetaSat * math.Pow(psiSat/fieldCapacityHead, 1/b),
		ThetaSat: thetaSat,
		B:        b,
		PsiSat:   psiSat * headToMPa,
	}
}

// WaterCapacity returns the plant-available water holding capacity [mm]
// of a layer of the given depth [mm].
func (h Hydraulics) WaterCapacity(depth float64) float64 {
	return depth * (h.ThetaFC - h.ThetaWP)
}

// StressModel selects a soil-moisture stress formulation.
type StressModel int

// Stress formulations.
const (
	// Power is the simple power-law modifier smc^q.
	Power StressModel = iota
	// LandsbergWaringModel is the Landsberg and Waring (1997) sigmoid.
	LandsbergWaringModel
	// PotentialModel is the exponential function of soil water potential
	// (Zhou et al. 2013).
	PotentialModel
)

func (m StressModel) String() string {
	switch m {
	case Power:
		return "power"
	case LandsbergWaringModel:
		return "landsberg_waring"
	case PotentialModel:
		return "potential"
	}
	return fmt.Sprintf("StressModel(%d)", int(m))
}

// Validate returns an error if m is not a known formulation.
func (m StressModel) Validate() error {
	if m < Power || m > PotentialModel {
		return fmt.Errorf("soil: unknown soil-moisture stress model %d", int(m))
	}
	return nil
}

// PowerStress returns smc^qs.
func PowerStress(smc, qs float64) float64 {
	return math.Pow(smc, qs)
}

// LWStress returns the Landsberg and Waring (1997) modifier.
func LWStress(smc float64, p LWParams) float64 {
	return 1 / (1 + math.Pow((1-smc)/p.C, p.N))
}

// drySoilPotential is the potential assigned to a completely dry soil [MPa].
const drySoilPotential = -1.5

// PotentialStress returns exp(0.66 ψ), where ψ [MPa] is the soil water
// potential at relative soil moisture smc for a soil with the given
// saturation potential [MPa], saturated water content and b exponent.
// dry reports whether smc should be treated as zero.
func PotentialStress(smc, psiSat, thetaSat, b float64, dry bool) float64 {
	psi := drySoilPotential
	if !dry {
		psi = psiSat * math.Pow(smc/thetaSat, -b)
	}
	return math.Exp(0.66 * psi)
}
