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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/Knetic/govaluate"
	"github.com/ctessum/cdf"
	"github.com/ctessum/unit"
	"github.com/tealeg/xlsx"
	"gonum.org/v1/gonum/floats"
)

// Output holds the daily results of a site simulation.
type Output struct {
	Dates []time.Time

	vars []outputVar
	data [][]float64
}

type outputVar struct {
	name, desc, units string
	get               func(*Site) float64

	// expr is set for derived variables instead of get.
	expr *govaluate.EvaluableExpression
}

// NewOutput returns an Output that records the day length and every
// State and Fluxes field that has units.
func NewOutput() *Output {
	o := &Output{
		vars: []outputVar{{
			name: "DayLen", desc: "Day length", units: "h",
			get: func(s *Site) float64 { return s.DayLen },
		}},
	}
	o.addFields(reflect.TypeOf(State{}), func(s *Site) reflect.Value { return reflect.ValueOf(s.State).Elem() })
	o.addFields(reflect.TypeOf(Fluxes{}), func(s *Site) reflect.Value { return reflect.ValueOf(s.Fluxes).Elem() })
	o.data = make([][]float64, len(o.vars))
	return o
}

func (o *Output) addFields(t reflect.Type, v func(*Site) reflect.Value) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		units := f.Tag.Get("units")
		if units == "" {
			continue
		}
		i := i
		o.vars = append(o.vars, outputVar{
			name:  f.Name,
			desc:  f.Tag.Get("desc"),
			units: units,
			get:   func(s *Site) float64 { return v(s).Field(i).Float() },
		})
	}
}

// Record returns a function that stores the results of the current day
// in o.
func Record(o *Output) SiteManipulator {
	return func(s *Site) error {
		o.Dates = append(o.Dates, s.Date())
		d := o.Len() - 1
		for i, v := range o.vars {
			if v.expr == nil {
				o.data[i] = append(o.data[i], v.get(s))
				continue
			}
			val, err := o.evaluate(v, d)
			if err != nil {
				return err
			}
			o.data[i] = append(o.data[i], val)
		}
		return nil
	}
}

// Len returns the number of days recorded.
func (o *Output) Len() int { return len(o.Dates) }

// Vars returns the names of the recorded variables.
func (o *Output) Vars() []string {
	names := make([]string, len(o.vars))
	for i, v := range o.vars {
		names[i] = v.name
	}
	return names
}

func (o *Output) index(name string) (int, error) {
	for i, v := range o.vars {
		if v.name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("forestwater: output variable %q does not exist; options are %v", name, o.Vars())
}

// Series returns the daily values of the named variable.
func (o *Output) Series(name string) ([]float64, error) {
	i, err := o.index(name)
	if err != nil {
		return nil, err
	}
	return o.data[i], nil
}

// Units returns the units of the named variable.
func (o *Output) Units(name string) (string, error) {
	i, err := o.index(name)
	if err != nil {
		return "", err
	}
	return o.vars[i].units, nil
}

// Totals returns the sum over the simulation of each daily water flux,
// as a depth of water.
func (o *Output) Totals() map[string]*unit.Unit {
	t := make(map[string]*unit.Unit)
	for i, v := range o.vars {
		if v.units != "mm d-1" {
			continue
		}
		t[v.name] = unit.New(floats.Sum(o.data[i])*mmToM, unit.Meter)
	}
	return t
}

// Residual returns the water that is not accounted for by the recorded
// root zone storage change, runoff, transpiration and soil evaporation.
// It is zero unless the root zone dried out during the simulation.
func (o *Output) Residual() (*unit.Unit, error) {
	t := o.Totals()
	dStore, err := o.Series("DeltaSWStore")
	if err != nil {
		return nil, err
	}
	r := unit.Sub(t["ERain"], t["Transpiration"], t["SoilEvap"], t["Runoff"],
		unit.New(floats.Sum(dStore)*mmToM, unit.Meter))
	if err := r.Check(unit.Meter); err != nil {
		return nil, fmt.Errorf("forestwater: water balance residual: %v", err)
	}
	return r, nil
}

// VarStats holds summary statistics of a recorded variable.
type VarStats struct {
	Name, Units    string
	Mean, Min, Max float64
}

// Stats returns summary statistics for each recorded variable.
func (o *Output) Stats() []VarStats {
	out := make([]VarStats, 0, len(o.vars))
	if o.Len() == 0 {
		return out
	}
	for i, v := range o.vars {
		out = append(out, VarStats{
			Name:  v.name,
			Units: v.units,
			Mean:  stats.StatsMean(o.data[i]),
			Min:   stats.StatsMin(o.data[i]),
			Max:   stats.StatsMax(o.data[i]),
		})
	}
	return out
}

// Save writes o to the named file, in netCDF, CSV or Excel format
// depending on whether the file extension is ".nc", ".csv" or ".xlsx".
func (o *Output) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".nc", ".csv", ".xlsx":
	default:
		return fmt.Errorf("forestwater: unsupported output file type %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("forestwater: creating output file: %w", err)
	}
	switch ext {
	case ".nc":
		err = o.WriteNetCDF(f)
	case ".csv":
		err = o.WriteCSV(f)
	case ".xlsx":
		err = o.WriteXLSX(f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("forestwater: writing %s: %w", path, err)
	}
	return f.Close()
}

// SaveOutput returns a function that writes o to path when the
// simulation is finished.
func SaveOutput(o *Output, path string) SiteManipulator {
	return func(*Site) error { return o.Save(path) }
}

const dateFormat = "2006-01-02"

// dateInt encodes a date as an integer of the form YYYYMMDD.
func dateInt(t time.Time) int32 {
	return int32(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// WriteNetCDF writes o to w as a netCDF file with dimension "day".
func (o *Output) WriteNetCDF(w *os.File) error {
	h := cdf.NewHeader([]string{"day"}, []int{o.Len()})
	h.AddAttribute("", "comment", "ForestWater daily water balance output")
	h.AddAttribute("", "model_version", Version)
	h.AddVariable("date", []string{"day"}, []int32{0})
	h.AddAttribute("date", "description", "Date")
	h.AddAttribute("date", "units", "YYYYMMDD")
	for _, v := range o.vars {
		h.AddVariable(v.name, []string{"day"}, []float64{0})
		h.AddAttribute(v.name, "description", v.desc)
		h.AddAttribute(v.name, "units", v.units)
	}
	h.Define()
	for _, err := range h.Check() {
		return err
	}

	f, err := cdf.Create(w, h)
	if err != nil {
		return err
	}
	dates := make([]int32, o.Len())
	for i, d := range o.Dates {
		dates[i] = dateInt(d)
	}
	if _, err := f.Writer("date", []int{0}, []int{o.Len()}).Write(dates); err != nil {
		return fmt.Errorf("writing date: %v", err)
	}
	for i, v := range o.vars {
		if _, err := f.Writer(v.name, []int{0}, []int{o.Len()}).Write(o.data[i]); err != nil {
			return fmt.Errorf("writing %s: %v", v.name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

// header returns the column headings of tabular output.
func (o *Output) header() []string {
	hdr := []string{"Date"}
	for _, v := range o.vars {
		hdr = append(hdr, fmt.Sprintf("%s [%s]", v.name, v.units))
	}
	return hdr
}

// WriteCSV writes o to w as comma-separated values with one row per day.
func (o *Output) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(o.header()); err != nil {
		return err
	}
	row := make([]string, len(o.vars)+1)
	for d, date := range o.Dates {
		row[0] = date.Format(dateFormat)
		for i := range o.vars {
			row[i+1] = strconv.FormatFloat(o.data[i][d], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes o to w as a Microsoft Excel workbook with one row
// per day.
func (o *Output) WriteXLSX(w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("water balance")
	if err != nil {
		return err
	}
	row := sheet.AddRow()
	for _, h := range o.header() {
		row.AddCell().SetString(h)
	}
	for d, date := range o.Dates {
		row := sheet.AddRow()
		row.AddCell().SetString(date.Format(dateFormat))
		for i := range o.vars {
			row.AddCell().SetFloat(o.data[i][d])
		}
	}
	return f.Write(w)
}
