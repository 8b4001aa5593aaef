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
	"os"

	"github.com/ctessum/cdf"
)

// ReadMetNetCDF reads meteorological forcing from a netCDF file in which
// each series is a float variable with the single dimension "day".
func ReadMetNetCDF(rw cdf.ReaderWriterAt) (*MetData, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("forestwater: opening forcing file: %v", err)
	}
	vars := make(map[string]bool)
	for _, v := range f.Header.Variables() {
		vars[v] = true
	}
	m := new(MetData)
	for _, mf := range metFields {
		if !vars[mf.name] {
			if mf.optional {
				continue
			}
			return nil, fmt.Errorf("%w: forcing file is missing variable %s", ErrForcing, mf.name)
		}
		if dims := f.Header.Dimensions(mf.name); len(dims) != 1 || dims[0] != "day" {
			return nil, fmt.Errorf("%w: forcing variable %s has dimensions %v; it should have dimension [day]",
				ErrForcing, mf.name, dims)
		}
		r := f.Reader(mf.name, nil, nil)
		buf := r.Zero(-1)
		if _, err = r.Read(buf); err != nil {
			return nil, fmt.Errorf("forestwater: reading forcing variable %s: %v", mf.name, err)
		}
		var data []float64
		switch b := buf.(type) {
		case []float64:
			data = b
		case []float32:
			data = make([]float64, len(b))
			for i, v := range b {
				data[i] = float64(v)
			}
		default:
			return nil, fmt.Errorf("%w: forcing variable %s has type %T; it should be float or double",
				ErrForcing, mf.name, buf)
		}
		*m.series(mf) = data
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteNetCDF writes m to w in the format read by ReadMetNetCDF.
// Optional series that are nil are omitted.
func (m *MetData) WriteNetCDF(w *os.File) error {
	if err := m.Check(); err != nil {
		return err
	}
	h := cdf.NewHeader([]string{"day"}, []int{m.Len()})
	h.AddAttribute("", "comment", "ForestWater meteorological forcing")
	var written []metField
	for _, mf := range metFields {
		if *m.series(mf) == nil {
			continue
		}
		h.AddVariable(mf.name, []string{"day"}, []float64{0})
		h.AddAttribute(mf.name, "description", mf.desc)
		h.AddAttribute(mf.name, "units", mf.unit)
		written = append(written, mf)
	}
	h.Define()
	for _, err := range h.Check() {
		return err
	}
	f, err := cdf.Create(w, h)
	if err != nil {
		return err
	}
	for _, mf := range written {
		if _, err := f.Writer(mf.name, []int{0}, []int{m.Len()}).Write(*m.series(mf)); err != nil {
			return fmt.Errorf("forestwater: writing forcing variable %s: %v", mf.name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}
