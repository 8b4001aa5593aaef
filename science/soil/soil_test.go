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
	"errors"
	"math"
	"testing"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestCalcHydraulicsSand(t *testing.T) {
	f, err := TextureFractions(Sand)
	if err != nil {
		t.Fatal(err)
	}
	h := CalcHydraulics(f)
	if math.Abs(h.B-3.295) > 1e-9 {
		t.Errorf("b: have %g, want 3.295", h.B)
	}
	if different(h.ThetaSat, 0.505-0.037*0.03-0.142*0.92, 1e-12) {
		t.Errorf("theta_sat: have %g", h.ThetaSat)
	}
	if h.PsiSat >= 0 {
		t.Errorf("psi_sat should be negative, have %g", h.PsiSat)
	}
	if !(h.ThetaWP < h.ThetaFC && h.ThetaFC < h.ThetaSat) {
		t.Errorf("water contents out of order: %+v", h)
	}
}

func TestCalcHydraulicsAllTextures(t *testing.T) {
	for tex := range cosbyFractions {
		f, err := TextureFractions(tex)
		if err != nil {
			t.Fatal(err)
		}
		h := CalcHydraulics(f)
		if h.WaterCapacity(1000) <= 0 {
			t.Errorf("%v: available water capacity should be positive: %+v", tex, h)
		}
		if CalcHydraulics(f) != h {
			t.Errorf("%v: not deterministic", tex)
		}
	}
}

func TestWaterCapacity(t *testing.T) {
	h := Hydraulics{ThetaFC: 0.3, ThetaWP: 0.1}
	if c := h.WaterCapacity(350); different(c, 70, 1e-12) {
		t.Errorf("have %g, want 70", c)
	}
}

func TestTextureErrors(t *testing.T) {
	if _, err := TextureFractions(Silt); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("silt fractions: have %v, want ErrInvalidTexture", err)
	}
	if _, err := LandsbergWaring(Silt); err != nil {
		t.Errorf("silt Landsberg-Waring: %v", err)
	}
	if _, err := ParseTexture("peat"); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("have %v, want ErrInvalidTexture", err)
	}
	if _, err := LandsbergWaring(Unknown); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("have %v, want ErrInvalidTexture", err)
	}
}

func TestParseTexture(t *testing.T) {
	for name, want := range map[string]Texture{
		"sandy_clay_loam": SandyClayLoam,
		"Sandy Loam":      SandyLoam,
		" clay ":          Clay,
	} {
		tex, err := ParseTexture(name)
		if err != nil {
			t.Fatal(err)
		}
		if tex != want {
			t.Errorf("%q: have %v, want %v", name, tex, want)
		}
	}
	var tex Texture
	if err := tex.UnmarshalText([]byte("loam")); err != nil || tex != Loam {
		t.Errorf("UnmarshalText: %v %v", tex, err)
	}
	b, err := Loam.MarshalText()
	if err != nil || string(b) != "loam" {
		t.Errorf("MarshalText: %s %v", b, err)
	}
}

func TestStressBounds(t *testing.T) {
	f, _ := TextureFractions(Loam)
	h := CalcHydraulics(f)
	lw, _ := LandsbergWaring(Loam)
	for i := 0; i <= 20; i++ {
		smc := float64(i) / 20
		for m, w := range map[StressModel]float64{
			Power:                PowerStress(smc, 0.5),
			LandsbergWaringModel: LWStress(smc, lw),
			PotentialModel:       PotentialStress(smc, h.PsiSat, h.ThetaSat, h.B, i == 0),
		} {
			if w < 0 || w > 1 || math.IsNaN(w) {
				t.Errorf("%v: smc=%g gives stress factor %g", m, smc, w)
			}
		}
	}
}

func TestStressMonotonic(t *testing.T) {
	lw, _ := LandsbergWaring(SandyLoam)
	prev := LWStress(0, lw)
	for i := 1; i <= 10; i++ {
		w := LWStress(float64(i)/10, lw)
		if w < prev {
			t.Errorf("Landsberg-Waring modifier decreased at smc=%g", float64(i)/10)
		}
		prev = w
	}
	if w := LWStress(1-lw.C, lw); different(w, 0.5, 1e-12) {
		t.Errorf("modifier at 1-c should be 0.5, have %g", w)
	}
}

func TestPotentialStressDry(t *testing.T) {
	w := PotentialStress(0, -0.001, 0.4, 4, true)
	if different(w, math.Exp(0.66*-1.5), 1e-12) {
		t.Errorf("have %g", w)
	}
}

func TestStressModelValidate(t *testing.T) {
	if err := StressModel(3).Validate(); err == nil {
		t.Error("expected error")
	}
	if err := PotentialModel.Validate(); err != nil {
		t.Error(err)
	}
}
