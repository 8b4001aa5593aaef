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
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/forestwater/science/evap"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// testMet returns n days of summer forcing.
func testMet(n int) *MetData {
	return &MetData{
		Tair: fill(n, 18), Tam: fill(n, 15), Tpm: fill(n, 21),
		SWRad: fill(n, 20), SWRadAM: fill(n, 9), SWRadPM: fill(n, 11),
		Rain:   fill(n, 3),
		VPDAvg: fill(n, 1), VPDAM: fill(n, 0.7), VPDPM: fill(n, 1.3),
		Wind: fill(n, 2), WindAM: fill(n, 1.5), WindPM: fill(n, 2.5),
		CO2: fill(n, 400),
	}
}

func testWaterBalance(t *testing.T, c Control) *WaterBalance {
	p := DefaultParams()
	p.WCapacTopsoil = 50
	p.WCapacRoot = 150
	s := &State{
		PAWaterTopsoil: 40, PAWaterRoot: 120,
		WTFacTopsoil: 1, WTFacRoot: 1,
		LAI: 4, Canht: 20,
	}
	f := &Fluxes{GPPgCm2: 8, GPPAM: 3.5, GPPPM: 4.5, WUE: 4}
	wb, err := NewWaterBalance(&c, p, s, f, testMet(3))
	if err != nil {
		t.Fatal(err)
	}
	return wb
}

func TestUpdateWaterStorageScenario(t *testing.T) {
	wb := &WaterBalance{
		Params: &Params{WCapacTopsoil: 50, WCapacRoot: 200, FractupSoil: 0.5},
		State:  &State{PAWaterTopsoil: 40, PAWaterRoot: 100, WTFacTopsoil: 1},
		Fluxes: &Fluxes{},
	}
	wb.infiltration(10)
	if wb.Fluxes.Interception != 0 || wb.Fluxes.ERain != 10 {
		t.Fatalf("infiltration with no leaves: %+v", wb.Fluxes)
	}
	wb.Fluxes.Transpiration = 2
	wb.Fluxes.SoilEvap = 1
	runoff := wb.UpdateWaterStorage()
	if wb.State.PAWaterTopsoil != 48 {
		t.Errorf("topsoil water: have %g, want 48", wb.State.PAWaterTopsoil)
	}
	if runoff != 0 {
		t.Errorf("runoff: have %g, want 0", runoff)
	}
	if wb.State.PAWaterRoot != 107 || wb.State.DeltaSWStore != 7 {
		t.Errorf("root zone: %+v", wb.State)
	}
}

func TestUpdateWaterStorageOverflow(t *testing.T) {
	wb := &WaterBalance{
		Params: &Params{WCapacTopsoil: 50, WCapacRoot: 100},
		State:  &State{PAWaterTopsoil: 10, PAWaterRoot: 95, WTFacTopsoil: 1},
		Fluxes: &Fluxes{ERain: 13, Transpiration: 2, SoilEvap: 1},
	}
	runoff := wb.UpdateWaterStorage()
	if runoff != 5 {
		t.Errorf("runoff: have %g, want 5", runoff)
	}
	if wb.State.PAWaterRoot != 100 {
		t.Errorf("root zone water: have %g, want 100", wb.State.PAWaterRoot)
	}
	if wb.State.DeltaSWStore != 5 {
		t.Errorf("storage change: have %g, want 5", wb.State.DeltaSWStore)
	}
}

func TestUpdateWaterStorageDrought(t *testing.T) {
	wb := &WaterBalance{
		Params: &Params{WCapacTopsoil: 50, WCapacRoot: 100, FractupSoil: 0.4},
		State:  &State{PAWaterTopsoil: 1, PAWaterRoot: 2, WTFacTopsoil: 0.1},
		Fluxes: &Fluxes{ERain: 0.5, Interception: 0.2, Transpiration: 2, SoilEvap: 1, ET: 3.2},
	}
	runoff := wb.UpdateWaterStorage()
	want := &Fluxes{ERain: 0.5, Interception: 0.2, ET: 0.2}
	if diff := pretty.Diff(wb.Fluxes, want); len(diff) > 0 {
		t.Errorf("fluxes after drought: %v", diff)
	}
	if runoff != 0 || wb.State.PAWaterRoot != 0 || wb.State.DeltaSWStore != -2 {
		t.Errorf("state after drought: runoff=%g %+v", runoff, wb.State)
	}
}

func TestUpdateWaterStorageBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	wb := &WaterBalance{
		Params: &Params{WCapacTopsoil: 40, WCapacRoot: 120, FractupSoil: 0.4},
		State:  &State{PAWaterTopsoil: 20, PAWaterRoot: 60},
		Fluxes: &Fluxes{},
	}
	for i := 0; i < 10000; i++ {
		wb.State.WTFacTopsoil = rnd.Float64()
		*wb.Fluxes = Fluxes{
			ERain:         rnd.ExpFloat64() * 5,
			Transpiration: rnd.Float64() * 6,
			SoilEvap:      rnd.Float64() * 2,
		}
		runoff := wb.UpdateWaterStorage()
		s := wb.State
		if s.PAWaterTopsoil < 0 || s.PAWaterTopsoil > 40 || s.PAWaterRoot < 0 || s.PAWaterRoot > 120 {
			t.Fatalf("iteration %d: store out of bounds: %+v", i, s)
		}
		if runoff < 0 {
			t.Fatalf("iteration %d: negative runoff %g", i, runoff)
		}
		if runoff > 0 && math.Abs(s.PAWaterRoot-120) > 1e-9 {
			t.Fatalf("iteration %d: runoff with unfilled root zone: %+v", i, s)
		}
	}
}

func TestInfiltration(t *testing.T) {
	wb := &WaterBalance{
		Params: &Params{InterceptFrac: 0.15, MaxInterceptLAI: 3},
		State:  &State{LAI: 1.5},
		Fluxes: &Fluxes{},
	}
	wb.infiltration(10)
	if different(wb.Fluxes.Interception, 0.75, 1e-12) || different(wb.Fluxes.ERain, 9.25, 1e-12) {
		t.Errorf("partial canopy: %+v", wb.Fluxes)
	}
	wb.State.LAI = 6
	wb.infiltration(10)
	if different(wb.Fluxes.Interception, 1.5, 1e-12) {
		t.Errorf("closed canopy: %+v", wb.Fluxes)
	}
	wb.State.LAI = 0
	wb.infiltration(-1)
	if wb.Fluxes.ERain != 0 || wb.Fluxes.Interception != 0 {
		t.Errorf("negative rain: %+v", wb.Fluxes)
	}
}

func TestWUETranspiration(t *testing.T) {
	wb := testWaterBalance(t, Control{TransModel: TransWUE})
	if err := wb.CalculateWaterBalance(0, 12); err != nil {
		t.Fatal(err)
	}
	// Transpiration may only have been cancelled by drought, which
	// this soil is far from.
	if wb.Fluxes.Transpiration != 2 {
		t.Errorf("transpiration: have %g, want 2", wb.Fluxes.Transpiration)
	}
	wb.Fluxes.WUE = 0
	wb.wueTranspiration()
	if wb.Fluxes.Transpiration != 0 {
		t.Errorf("zero WUE: have %g, want 0", wb.Fluxes.Transpiration)
	}
}

func TestCalculateWaterBalanceModels(t *testing.T) {
	for _, c := range []Control{
		{TransModel: TransWUE},
		{TransModel: TransPenmanMonteith, AssimModel: BEWDY},
		{TransModel: TransPenmanMonteith, AssimModel: MATE},
		{TransModel: TransPriestleyTaylor},
	} {
		t.Run(c.TransModel.String()+"_"+c.AssimModel.String(), func(t *testing.T) {
			wb := testWaterBalance(t, c)
			if err := wb.CalculateWaterBalance(1, 14); err != nil {
				t.Fatal(err)
			}
			f := wb.Fluxes
			if f.Transpiration <= 0 || f.Transpiration > 10 {
				t.Errorf("transpiration %g mm d-1 is not plausible", f.Transpiration)
			}
			if f.SoilEvap <= 0 || f.SoilEvap > 5 {
				t.Errorf("soil evaporation %g mm d-1 is not plausible", f.SoilEvap)
			}
			if different(f.ET, f.Transpiration+f.SoilEvap+f.Interception, 1e-12) {
				t.Errorf("ET %g is not the sum of its parts: %+v", f.ET, f)
			}
			if different(f.ERain+f.Interception, 3, 1e-12) {
				t.Errorf("rainfall not conserved: %+v", f)
			}
			if c.TransModel == TransPenmanMonteith {
				if f.GsMolM2Sec <= 0 || f.GaMolM2Sec <= 0 || f.Omega <= 0 || f.Omega >= 1 {
					t.Errorf("conductances: %+v", f)
				}
			}
		})
	}
}

func TestMATEHalfDays(t *testing.T) {
	// With identical mornings and afternoons each half-day should
	// contribute equally.
	wb := testWaterBalance(t, Control{TransModel: TransPenmanMonteith, AssimModel: MATE})
	m, err := wb.Met.Day(0)
	if err != nil {
		t.Fatal(err)
	}
	m.Press = evap.AtmosPressure(wb.Params.Elevation)
	netRad := wb.netRadiation(18, 10, 6)
	am, err := wb.penmanMonteithHalfDay(netRad, 2, 400, 12, m.Press, 1, 18, 4)
	if err != nil {
		t.Fatal(err)
	}
	wb.Met.Tam[0], wb.Met.Tpm[0] = 18, 18
	wb.Met.SWRadAM[0], wb.Met.SWRadPM[0] = 10, 10
	wb.Met.WindAM[0], wb.Met.WindPM[0] = 2, 2
	wb.Met.VPDAM[0], wb.Met.VPDPM[0] = 1, 1
	wb.Fluxes.GPPAM, wb.Fluxes.GPPPM = 4, 4
	m, _ = wb.Met.Day(0)
	m.Press = evap.AtmosPressure(wb.Params.Elevation)
	if err := wb.penmanMonteithAMPM(m, netRad, netRad, 12); err != nil {
		t.Fatal(err)
	}
	if different(wb.Fluxes.Transpiration, 2*am.trans, 1e-12) {
		t.Errorf("transpiration: have %g, want %g", wb.Fluxes.Transpiration, 2*am.trans)
	}
	if different(wb.Fluxes.Omega, am.omega, 1e-12) {
		t.Errorf("omega: have %g, want %g", wb.Fluxes.Omega, am.omega)
	}
	// Two half-day integrals over a whole day give the half-day mean rate.
	if different(wb.Fluxes.GsMolM2Sec, am.gs/(3600*6), 1e-12) {
		t.Errorf("gs: have %g, want %g", wb.Fluxes.GsMolM2Sec, am.gs/(3600*6))
	}
}

func TestPressureFallback(t *testing.T) {
	c := Control{TransModel: TransPenmanMonteith, AssimModel: BEWDY}
	a := testWaterBalance(t, c)
	b := testWaterBalance(t, c)
	b.Met.AtmosPress = fill(3, evap.AtmosPressure(b.Params.Elevation))
	if err := a.CalculateWaterBalance(0, 12); err != nil {
		t.Fatal(err)
	}
	if err := b.CalculateWaterBalance(0, 12); err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(a.Fluxes, b.Fluxes); len(diff) > 0 {
		t.Errorf("explicit and estimated pressure differ: %v", diff)
	}
}

func TestCalculateWaterBalanceErrors(t *testing.T) {
	pm := Control{TransModel: TransPenmanMonteith, AssimModel: BEWDY}

	wb := testWaterBalance(t, pm)
	wb.Met.VPDAvg[0] = 0
	if err := wb.CalculateWaterBalance(0, 12); !errors.Is(err, ErrNumericDomain) {
		t.Errorf("zero VPD: have %v, want ErrNumericDomain", err)
	}

	wb = testWaterBalance(t, pm)
	wb.Met.CO2[0] = 0
	if err := wb.CalculateWaterBalance(0, 12); !errors.Is(err, ErrNumericDomain) {
		t.Errorf("zero CO2: have %v, want ErrNumericDomain", err)
	}

	wb = testWaterBalance(t, pm)
	wb.State.Canht = 0
	if err := wb.CalculateWaterBalance(0, 12); !errors.Is(err, ErrNumericDomain) {
		t.Errorf("zero canopy height: have %v, want ErrNumericDomain", err)
	}

	wb = testWaterBalance(t, pm)
	if err := wb.CalculateWaterBalance(0, -1); !errors.Is(err, ErrNumericDomain) {
		t.Errorf("negative day length: have %v, want ErrNumericDomain", err)
	}
	wb.Met.AtmosPress = fill(3, 100)
	wb.Met.AtmosPress[1] = 0
	if err := wb.CalculateWaterBalance(0, 12); err != nil {
		t.Errorf("supplied pressure: %v", err)
	}
	if err := wb.CalculateWaterBalance(1, 12); !errors.Is(err, ErrNumericDomain) {
		t.Errorf("zero supplied pressure: have %v, want ErrNumericDomain", err)
	}
	if err := wb.CalculateWaterBalance(3, 12); !errors.Is(err, ErrForcing) {
		t.Errorf("day out of range: have %v, want ErrForcing", err)
	}

	// VPD is not used by Priestley-Taylor.
	wb = testWaterBalance(t, Control{TransModel: TransPriestleyTaylor})
	wb.Met.VPDAvg[0] = 0
	if err := wb.CalculateWaterBalance(0, 12); err != nil {
		t.Errorf("Priestley-Taylor with zero VPD: %v", err)
	}

	_, err := NewWaterBalance(&Control{TransModel: 7}, DefaultParams(), new(State), new(Fluxes), testMet(1))
	if !errors.Is(err, ErrUnmodeledControl) {
		t.Errorf("unknown model: have %v, want ErrUnmodeledControl", err)
	}
}

func TestNetRadiation(t *testing.T) {
	wb := &WaterBalance{Params: &Params{Albedo: 0.2}}
	// (20*0.8 - (107-6)*10*0.0036) / 36000
	want := (16 - 101*10*0.0036) / 36000
	if r := wb.netRadiation(20, 20, 10); different(r, want, 1e-12) {
		t.Errorf("have %g, want %g", r, want)
	}
	if r := wb.netRadiation(20, 1, 10); r != 0 {
		t.Errorf("net radiation should not be negative: %g", r)
	}
}

func TestDarkDay(t *testing.T) {
	wb := testWaterBalance(t, Control{TransModel: TransPenmanMonteith, AssimModel: MATE})
	wb.Met.Rain[1] = 40
	*wb.Fluxes = Fluxes{
		Transpiration: 5, SoilEvap: 1, GsMolM2Sec: 0.2, GaMolM2Sec: 2, Omega: 0.3,
		GPPAM: 3.5, GPPPM: 4.5,
	}
	if err := wb.CalculateWaterBalance(1, 0); err != nil {
		t.Fatal(err)
	}
	want := &Fluxes{
		Interception: 6, ERain: 34, ET: 6, Runoff: 4,
		GPPAM: 3.5, GPPPM: 4.5,
	}
	if diff := pretty.Diff(wb.Fluxes, want); len(diff) > 0 {
		t.Errorf("fluxes without daylight: %v", diff)
	}
	if wb.State.PAWaterTopsoil != 50 || wb.State.PAWaterRoot != 150 || wb.State.DeltaSWStore != 30 {
		t.Errorf("stores without daylight: %+v", wb.State)
	}
}

func TestSoilEvaporation(t *testing.T) {
	wb := testWaterBalance(t, Control{TransModel: TransWUE})
	m, err := wb.Met.Day(0)
	if err != nil {
		t.Fatal(err)
	}
	m.Press = evap.AtmosPressure(wb.Params.Elevation)
	netRad := wb.netRadiation(m.Tair, m.SWRad, 12)

	wb.State.LAI, wb.State.WTFacTopsoil = 0, 1
	bare := wb.soilEvaporation(m, netRad, 12)
	eq := evap.Penman{}.Evaporation(evap.Conditions{NetRad: netRad, Tavg: m.Tair, Press: m.Press}).Evap
	if different(bare, eq*3600*12, 1e-12) {
		t.Errorf("bare wet soil: have %g, want %g", bare, eq*3600*12)
	}

	wb.State.LAI, wb.State.WTFacTopsoil = 2, 0.5
	shaded := wb.soilEvaporation(m, netRad, 12)
	// 0.5 exp(-0.398 * 2) = 0.22556493970152
	if different(shaded/bare, 0.22556493970152, 1e-12) {
		t.Errorf("shading and dryness: have ratio %.14g, want 0.22556493970152", shaded/bare)
	}
}

func TestStomatalConductanceDaily(t *testing.T) {
	wb := testWaterBalance(t, Control{TransModel: TransPenmanMonteith, AssimModel: BEWDY})
	if err := wb.CalculateWaterBalance(1, 14); err != nil {
		t.Fatal(err)
	}
	// 1.6 (1 + 2.74/√1) (8 g C / 12 g mol-1 * 1e6 / (3600 s h-1 * 14 h)) / 400
	const gs = 0.19788359788359788
	if different(wb.Fluxes.GsMolM2Sec, gs, 1e-12) {
		t.Errorf("gs: have %.17g, want %.17g", wb.Fluxes.GsMolM2Sec, gs)
	}

	press := evap.AtmosPressure(wb.Params.Elevation)
	conv := 0.001 * 8.314 * (18 + 273.15) / press
	if different(molToMetres(press, 18), conv, 1e-12) {
		t.Errorf("conversion to m s-1: have %g, want %g", molToMetres(press, 18), conv)
	}
	ga, err := wb.canopy.BoundaryLayerConductance(2, 20)
	if err != nil {
		t.Fatal(err)
	}
	r := evap.PenmanMonteith{}.Evaporation(evap.Conditions{
		NetRad: wb.netRadiation(18, 20, 14), Tavg: 18, Press: press, VPD: 1,
		Gs: gs * conv, Ga: ga,
	})
	if different(wb.Fluxes.Transpiration, r.Evap*3600*14, 1e-12) {
		t.Errorf("transpiration: have %g, want %g", wb.Fluxes.Transpiration, r.Evap*3600*14)
	}
	if different(wb.Fluxes.GaMolM2Sec, ga/conv, 1e-12) || different(wb.Fluxes.Omega, r.Omega, 1e-12) {
		t.Errorf("ga and omega: %+v", wb.Fluxes)
	}
}

func TestStomatalConductanceHalfDay(t *testing.T) {
	wb := testWaterBalance(t, Control{TransModel: TransPenmanMonteith, AssimModel: MATE})
	press := evap.AtmosPressure(wb.Params.Elevation)
	am, err := wb.penmanMonteithHalfDay(wb.netRadiation(15, 9, 7), 1.5, 400, 14, press, 0.7, 15, 3.5)
	if err != nil {
		t.Fatal(err)
	}
	// 1.6 (1 + 2.74/√0.7) (3.5 g C / 12 g mol-1 * 1e6 / (3600 s h-1 * 7 h)) / 400
	const gs = 0.19791325877667773
	if different(am.gs, gs*3600*7, 1e-12) {
		t.Errorf("morning gs: have %.17g mol m-2, want %.17g", am.gs, gs*3600*7)
	}
}
