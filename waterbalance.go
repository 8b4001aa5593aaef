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
	"math"

	"github.com/spatialmodel/forestwater/science/evap"
)

// WaterBalance calculates the daily water fluxes of a site and updates
// its soil water stores.
type WaterBalance struct {
	Control *Control
	Params  *Params
	State   *State
	Fluxes  *Fluxes
	Met     *MetData

	canopy   evap.Canopy
	pm       evap.PenmanMonteith
	soilEvap evap.Model
	pt       evap.Model
}

// NewWaterBalance returns a water balance for the given site variables.
// State and Fluxes are modified by the water balance; Control, Params
// and Met are only read.
func NewWaterBalance(c *Control, p *Params, s *State, f *Fluxes, m *MetData) (*WaterBalance, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return &WaterBalance{
		Control:  c,
		Params:   p,
		State:    s,
		Fluxes:   f,
		Met:      m,
		canopy:   p.canopy(),
		soilEvap: evap.Penman{},
		pt:       evap.PriestleyTaylor{Coeff: evap.DefaultPriestleyTaylorCoeff},
	}, nil
}

// CalculateWaterBalance calculates the water fluxes for the given day
// index, where daylen is the day length [hours], and updates the soil
// water stores. State.WTFacTopsoil and State.WTFacRoot should be
// current before it is called.
//
// On days without daylight (daylen == 0, inside the polar circles) there
// is no transpiration or soil evaporation; rainfall is still intercepted
// and infiltrated and the stores are updated.
func (wb *WaterBalance) CalculateWaterBalance(day int, daylen float64) error {
	if daylen < 0 || math.IsNaN(daylen) {
		return fmt.Errorf("%w: day length %g h must not be negative", ErrNumericDomain, daylen)
	}
	m, err := wb.Met.Day(day)
	if err != nil {
		return err
	}
	if floatEq(daylen, 0) {
		wb.darkDay(m.Rain)
		return nil
	}
	if wb.Met.AtmosPress == nil {
		m.Press = evap.AtmosPressure(wb.Params.Elevation)
	} else if m.Press <= 0 {
		return fmt.Errorf("forestwater: day %d: %w: atmospheric pressure %g kPa must be positive",
			day, ErrNumericDomain, m.Press)
	}
	halfDay := daylen / 2

	netRadDay := wb.netRadiation(m.Tair, m.SWRad, daylen)
	netRadAM := wb.netRadiation(m.Tam, m.SWRadAM, halfDay)
	netRadPM := wb.netRadiation(m.Tpm, m.SWRadPM, halfDay)

	switch wb.Control.TransModel {
	case TransWUE:
		wb.wueTranspiration()
	case TransPenmanMonteith:
		switch wb.Control.AssimModel {
		case BEWDY:
			err = wb.penmanMonteithDaily(m, netRadDay, daylen)
		case MATE:
			err = wb.penmanMonteithAMPM(m, netRadAM, netRadPM, daylen)
		default:
			err = fmt.Errorf("%w: %v with %v", ErrUnmodeledControl, wb.Control.TransModel, wb.Control.AssimModel)
		}
	case TransPriestleyTaylor:
		wb.priestleyTaylor(m, netRadDay, daylen)
	default:
		err = fmt.Errorf("%w: %v", ErrUnmodeledControl, wb.Control.TransModel)
	}
	if err != nil {
		return fmt.Errorf("forestwater: day %d: %w", day, err)
	}

	wb.infiltration(m.Rain)
	wb.Fluxes.SoilEvap = wb.soilEvaporation(m, netRadDay, daylen)
	wb.Fluxes.ET = wb.Fluxes.Transpiration + wb.Fluxes.SoilEvap + wb.Fluxes.Interception
	wb.Fluxes.Runoff = wb.UpdateWaterStorage()
	return nil
}

// darkDay calculates the water balance of a day without daylight.
func (wb *WaterBalance) darkDay(rain float64) {
	f := wb.Fluxes
	f.Transpiration, f.SoilEvap = 0, 0
	f.GsMolM2Sec, f.GaMolM2Sec, f.Omega = 0, 0, 0
	wb.infiltration(rain)
	f.ET = f.Interception
	f.Runoff = wb.UpdateWaterStorage()
}

// netRadiation estimates net radiation [MJ m-2 s-1] over a period of
// the given length [hours] from shortwave down radiation sw
// [MJ m-2 period-1] assuming clear skies (Ritchie 1972; Monteith and
// Unsworth 1990).
func (wb *WaterBalance) netRadiation(tavg, sw, hours float64) float64 {
	netLW := (107 - 0.3*tavg) * hours * wattHrToMJ
	netRad := math.Max(0, sw*(1-wb.Params.Albedo)-netLW)
	return netRad / (secPerHour * hours)
}

// wueTranspiration calculates transpiration [mm d-1] from the
// water-use efficiency of assimilation.
func (wb *WaterBalance) wueTranspiration() {
	if floatGT(wb.Fluxes.WUE, 0) {
		wb.Fluxes.Transpiration = wb.Fluxes.GPPgCm2 / wb.Fluxes.WUE
	} else {
		wb.Fluxes.Transpiration = 0
	}
}

// priestleyTaylor calculates transpiration [mm d-1] at the
// Priestley-Taylor potential rate.
func (wb *WaterBalance) priestleyTaylor(m MetDay, netRad, daylen float64) {
	r := wb.pt.Evaporation(evap.Conditions{NetRad: netRad, Tavg: m.Tair, Press: m.Press})
	wb.Fluxes.Transpiration = r.Evap * secPerHour * daylen
}

// stomatalConductance returns the stomatal conductance to water vapour
// [mol m-2 s-1] implied by assimilation gpp [g C m-2] over a period of
// the given length [hours] (Medlyn et al. 2011).
func (wb *WaterBalance) stomatalConductance(vpd, ca, hours, gpp float64) (float64, error) {
	if vpd <= 0 {
		return 0, fmt.Errorf("%w: vapour pressure deficit %g kPa must be positive", ErrNumericDomain, vpd)
	}
	if ca <= 0 {
		return 0, fmt.Errorf("%w: CO2 concentration %g µmol mol-1 must be positive", ErrNumericDomain, ca)
	}
	gppUmol := gpp * gramsCToMolC * molToUmol / (secPerHour * hours)
	return 1.6 * (1 + wb.Params.G1*wb.State.WTFacRoot/math.Sqrt(vpd)) * gppUmol / ca, nil
}

// molToMetres returns the factor that converts a conductance in
// mol m-2 s-1 to m s-1 (Jones 1992, appendix 3).
func molToMetres(press, tavg float64) float64 {
	return mmToM / (press / (rgas * (tavg + degToKelvin)))
}

// penmanMonteithDaily calculates transpiration [mm d-1] with a single
// Penman-Monteith calculation on daytime average forcing.
func (wb *WaterBalance) penmanMonteithDaily(m MetDay, netRad, daylen float64) error {
	gs, err := wb.stomatalConductance(m.VPDAvg, m.CO2, daylen, wb.Fluxes.GPPgCm2)
	if err != nil {
		return err
	}
	ga, err := wb.boundaryLayer(m.Wind)
	if err != nil {
		return err
	}
	conv := molToMetres(m.Press, m.Tair)
	r := wb.pm.Evaporation(evap.Conditions{
		NetRad: netRad, Tavg: m.Tair, Press: m.Press, VPD: m.VPDAvg,
		Gs: gs * conv, Ga: ga,
	})
	wb.Fluxes.GsMolM2Sec = gs
	wb.Fluxes.GaMolM2Sec = ga / conv
	wb.Fluxes.Omega = r.Omega
	wb.Fluxes.Transpiration = r.Evap * secPerHour * daylen
	return nil
}

// halfDayResult holds the transpiration [mm] and conductances
// [mol m-2 half-day-1] of a morning or afternoon.
type halfDayResult struct {
	trans, omega, gs, ga float64
}

// penmanMonteithAMPM calculates transpiration [mm d-1] as the sum of
// separate morning and afternoon Penman-Monteith calculations.
func (wb *WaterBalance) penmanMonteithAMPM(m MetDay, netRadAM, netRadPM, daylen float64) error {
	am, err := wb.penmanMonteithHalfDay(netRadAM, m.WindAM, m.CO2, daylen, m.Press, m.VPDAM, m.Tam, wb.Fluxes.GPPAM)
	if err != nil {
		return fmt.Errorf("morning: %w", err)
	}
	pm, err := wb.penmanMonteithHalfDay(netRadPM, m.WindPM, m.CO2, daylen, m.Press, m.VPDPM, m.Tpm, wb.Fluxes.GPPPM)
	if err != nil {
		return fmt.Errorf("afternoon: %w", err)
	}
	daySec := 1 / (secPerHour * daylen)
	wb.Fluxes.Omega = (am.omega + pm.omega) / 2
	wb.Fluxes.GsMolM2Sec = (am.gs + pm.gs) * daySec
	wb.Fluxes.GaMolM2Sec = (am.ga + pm.ga) * daySec
	wb.Fluxes.Transpiration = am.trans + pm.trans
	return nil
}

func (wb *WaterBalance) penmanMonteithHalfDay(netRad, wind, ca, daylen, press, vpd, tair, gpp float64) (halfDayResult, error) {
	halfDaySec := secPerHour * daylen / 2
	conv := molToMetres(press, tair)

	ga, err := wb.boundaryLayer(wind)
	if err != nil {
		return halfDayResult{}, err
	}
	gs, err := wb.stomatalConductance(vpd, ca, daylen/2, gpp)
	if err != nil {
		return halfDayResult{}, err
	}
	r := wb.pm.Evaporation(evap.Conditions{
		NetRad: netRad, Tavg: tair, Press: press, VPD: vpd,
		Gs: gs * conv, Ga: ga,
	})
	return halfDayResult{
		trans: r.Evap * halfDaySec,
		omega: r.Omega,
		gs:    gs * halfDaySec,
		ga:    ga / conv * halfDaySec,
	}, nil
}

// boundaryLayer returns the canopy boundary layer conductance [m s-1].
func (wb *WaterBalance) boundaryLayer(wind float64) (float64, error) {
	if wb.State.Canht <= 0 {
		return 0, fmt.Errorf("%w: canopy height %g m must be positive", ErrNumericDomain, wb.State.Canht)
	}
	return wb.canopy.BoundaryLayerConductance(wind, wb.State.Canht)
}

// infiltration partitions rainfall [mm d-1] into canopy interception and
// effective rainfall, assuming interception scales with leaf area up to
// Params.MaxInterceptLAI.
func (wb *WaterBalance) infiltration(rain float64) {
	if wb.State.LAI > 0 {
		wb.Fluxes.Interception = rain * wb.Params.InterceptFrac *
			math.Min(1, wb.State.LAI/wb.Params.MaxInterceptLAI)
		wb.Fluxes.ERain = rain - wb.Fluxes.Interception
	} else {
		wb.Fluxes.ERain = math.Max(0, rain)
		wb.Fluxes.Interception = 0
	}
}

// soilEvaporation returns soil evaporation [mm d-1] at the Penman
// equilibrium rate, reduced for canopy shading (Ritchie 1972) and
// topsoil dryness.
func (wb *WaterBalance) soilEvaporation(m MetDay, netRad, daylen float64) float64 {
	e := wb.soilEvap.Evaporation(evap.Conditions{NetRad: netRad, Tavg: m.Tair, Press: m.Press}).Evap
	if floatGT(wb.State.LAI, 0) {
		e *= math.Exp(-0.398 * wb.State.LAI)
	}
	e *= wb.State.WTFacTopsoil
	return e * secPerHour * daylen
}

// UpdateWaterStorage updates the topsoil and root zone water stores
// with the current day's fluxes and returns runoff [mm d-1]. The root
// zone is a "leaky bucket": water above its capacity leaves as runoff
// and there is no drainage. If the root zone dries out, transpiration
// and soil evaporation are cancelled for the day.
func (wb *WaterBalance) UpdateWaterStorage() float64 {
	s, p, f := wb.State, wb.Params, wb.Fluxes

	transFrac := p.FractupSoil * s.WTFacTopsoil
	s.PAWaterTopsoil += f.ERain - f.Transpiration*transFrac - f.SoilEvap
	s.PAWaterTopsoil = clip(s.PAWaterTopsoil, 0, p.WCapacTopsoil)

	previous := s.PAWaterRoot
	s.PAWaterRoot += f.ERain - f.Transpiration - f.SoilEvap

	var runoff float64
	if s.PAWaterRoot > p.WCapacRoot {
		runoff = s.PAWaterRoot - p.WCapacRoot
		s.PAWaterRoot -= runoff
	}

	if floatLE(s.PAWaterRoot, 0) {
		f.Transpiration = 0
		f.SoilEvap = 0
		f.ET = f.Interception
	}

	s.PAWaterRoot = clip(s.PAWaterRoot, 0, p.WCapacRoot)
	s.DeltaSWStore = s.PAWaterRoot - previous
	return runoff
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
