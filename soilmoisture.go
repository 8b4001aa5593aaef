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
	"fmt"

	"github.com/spatialmodel/forestwater/science/soil"
)

// SoilMoisture calculates soil hydraulic parameters and the water-stress
// factors of the topsoil and root zone.
type SoilMoisture struct {
	Control *Control
	Params  *Params
	State   *State
}

// NewSoilMoisture returns a soil moisture calculator for the given site
// variables.
func NewSoilMoisture(c *Control, p *Params, s *State) *SoilMoisture {
	return &SoilMoisture{Control: c, Params: p, State: s}
}

// InitialiseParameters derives the water holding capacities and
// hydraulic properties of both soil layers from their textures if
// Control.CalcSWParams is set (Cosby et al. 1984), and the
// Landsberg-Waring stress parameters if none of them have been set.
// It should be called once before the simulation starts.
func (sm *SoilMoisture) InitialiseParameters() error {
	p := sm.Params
	if sm.Control.CalcSWParams {
		top, err := layerHydraulics(p.TopsoilType)
		if err != nil {
			return fmt.Errorf("forestwater: topsoil: %w", err)
		}
		p.ThetaSatTopsoil, p.BTopsoil, p.PsiSatTopsoil = top.ThetaSat, top.B, top.PsiSat
		p.WCapacTopsoil = top.WaterCapacity(p.TopsoilDepth)

		root, err := layerHydraulics(p.RootsoilType)
		if err != nil {
			return fmt.Errorf("forestwater: root zone: %w", err)
		}
		p.ThetaSatRoot, p.BRoot, p.PsiSatRoot = root.ThetaSat, root.B, root.PsiSat
		p.WCapacRoot = root.WaterCapacity(p.RootingDepth)
	}

	if sm.Control.SWStressModel == soil.PotentialModel {
		if err := checkRetention("topsoil", p.BTopsoil, p.PsiSatTopsoil, p.ThetaSatTopsoil); err != nil {
			return err
		}
		if err := checkRetention("root zone", p.BRoot, p.PsiSatRoot, p.ThetaSatRoot); err != nil {
			return err
		}
	}

	lw := []float64{p.CThetaTopsoil, p.NThetaTopsoil, p.CThetaRoot, p.NThetaRoot}
	var set int
	for _, v := range lw {
		if v != 0 {
			set++
		}
	}
	switch set {
	case 0:
		top, err := soil.LandsbergWaring(p.TopsoilType)
		if err != nil {
			return fmt.Errorf("forestwater: topsoil: %w", err)
		}
		root, err := soil.LandsbergWaring(p.RootsoilType)
		if err != nil {
			return fmt.Errorf("forestwater: root zone: %w", err)
		}
		p.CThetaTopsoil, p.NThetaTopsoil = top.C, top.N
		p.CThetaRoot, p.NThetaRoot = root.C, root.N
	case len(lw):
	default:
		return fmt.Errorf("%w: either all or none of ctheta_topsoil, ntheta_topsoil, "+
			"ctheta_root and ntheta_root must be set", ErrInvalidParams)
	}
	return nil
}

// checkRetention returns ErrInvalidParams unless the retention curve
// parameters of a layer describe a potential that falls as the soil
// dries.
func checkRetention(layer string, b, psiSat, thetaSat float64) error {
	if b <= 0 || psiSat >= 0 || thetaSat <= 0 {
		return fmt.Errorf("%w: %s: the soil water potential stress model needs b > 0, "+
			"psi_sat < 0 and theta_sat > 0 (have %g, %g, %g); set them or calc_sw_params",
			ErrInvalidParams, layer, b, psiSat, thetaSat)
	}
	return nil
}

func layerHydraulics(t soil.Texture) (soil.Hydraulics, error) {
	f, err := soil.TextureFractions(t)
	if err != nil {
		return soil.Hydraulics{}, err
	}
	return soil.CalcHydraulics(f), nil
}

// CalculateSoilWaterFac returns the water-stress factors [0-1] of the
// topsoil and the root zone for the current soil water stores.
func (sm *SoilMoisture) CalculateSoilWaterFac() (top, root float64, err error) {
	p, s := sm.Params, sm.State
	if p.WCapacTopsoil <= 0 || p.WCapacRoot <= 0 {
		return 0, 0, fmt.Errorf("%w: water holding capacities (%g, %g mm) must be positive",
			ErrNumericDomain, p.WCapacTopsoil, p.WCapacRoot)
	}
	smcTop := s.PAWaterTopsoil / p.WCapacTopsoil
	smcRoot := s.PAWaterRoot / p.WCapacRoot

	switch sm.Control.SWStressModel {
	case soil.Power:
		return soil.PowerStress(smcTop, p.Qs), soil.PowerStress(smcRoot, p.Qs), nil
	case soil.LandsbergWaringModel:
		if p.CThetaTopsoil <= 0 || p.CThetaRoot <= 0 {
			return 0, 0, fmt.Errorf("%w: Landsberg-Waring ctheta must be positive", ErrNumericDomain)
		}
		top = soil.LWStress(smcTop, soil.LWParams{C: p.CThetaTopsoil, N: p.NThetaTopsoil})
		root = soil.LWStress(smcRoot, soil.LWParams{C: p.CThetaRoot, N: p.NThetaRoot})
		return top, root, nil
	case soil.PotentialModel:
		if p.ThetaSatTopsoil <= 0 || p.ThetaSatRoot <= 0 {
			return 0, 0, fmt.Errorf("%w: saturated water contents must be positive", ErrNumericDomain)
		}
		top = soil.PotentialStress(smcTop, p.PsiSatTopsoil, p.ThetaSatTopsoil, p.BTopsoil, floatEq(smcTop, 0))
		root = soil.PotentialStress(smcRoot, p.PsiSatRoot, p.ThetaSatRoot, p.BRoot, floatEq(smcRoot, 0))
		return top, root, nil
	}
	return 0, 0, fmt.Errorf("%w: %v", ErrUnmodeledControl, sm.Control.SWStressModel)
}
