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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/kr/pretty"
)

func TestMetNetCDFRoundTrip(t *testing.T) {
	m := testMet(5)
	m.Tair[2] = 23.5
	m.LAI = []float64{1, 2, 3, 4, 5}
	path := filepath.Join(t.TempDir(), "met.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.WriteNetCDF(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	f, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m2, err := ReadMetNetCDF(f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(m, m2); len(diff) > 0 {
		t.Errorf("forcing changed in round trip: %v", diff)
	}
}

func TestReadMetNetCDFMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	h := cdf.NewHeader([]string{"day"}, []int{2})
	h.AddVariable("tair", []string{"day"}, []float32{0})
	h.Define()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cf.Writer("tair", []int{0}, []int{2}).Write([]float32{10, 11}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadMetNetCDF(f); !errors.Is(err, ErrForcing) {
		t.Errorf("have %v, want ErrForcing", err)
	}
}

func TestMetCheck(t *testing.T) {
	m := testMet(4)
	m.Rain = m.Rain[:3]
	if err := m.Check(); !errors.Is(err, ErrForcing) {
		t.Errorf("short series: have %v, want ErrForcing", err)
	}
	m = testMet(4)
	m.GPP = fill(2, 1)
	if err := m.Check(); !errors.Is(err, ErrForcing) {
		t.Errorf("short optional series: have %v, want ErrForcing", err)
	}
	if err := new(MetData).Check(); !errors.Is(err, ErrForcing) {
		t.Errorf("empty forcing: have %v, want ErrForcing", err)
	}
	if err := testMet(4).Check(); err != nil {
		t.Error(err)
	}
}
