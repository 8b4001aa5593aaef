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
	"reflect"
	"strings"
)

// MetData holds daily meteorological forcing for a site, one element per
// day. Series tagged as optional may be nil. MetData is not modified by
// the model, so one value can be shared by several sites.
type MetData struct {
	Tair []float64 `nc:"tair" desc:"Daytime average air temperature" units:"°C"`
	Tam  []float64 `nc:"tam" desc:"Morning average air temperature" units:"°C"`
	Tpm  []float64 `nc:"tpm" desc:"Afternoon average air temperature" units:"°C"`

	SWRad   []float64 `nc:"sw_rad" desc:"Shortwave down radiation" units:"MJ m-2 d-1"`
	SWRadAM []float64 `nc:"sw_rad_am" desc:"Morning shortwave down radiation" units:"MJ m-2"`
	SWRadPM []float64 `nc:"sw_rad_pm" desc:"Afternoon shortwave down radiation" units:"MJ m-2"`

	Rain []float64 `nc:"rain" desc:"Rainfall" units:"mm d-1"`

	VPDAvg []float64 `nc:"vpd_avg" desc:"Daytime average vapour pressure deficit" units:"kPa"`
	VPDAM  []float64 `nc:"vpd_am" desc:"Morning vapour pressure deficit" units:"kPa"`
	VPDPM  []float64 `nc:"vpd_pm" desc:"Afternoon vapour pressure deficit" units:"kPa"`

	Wind   []float64 `nc:"wind" desc:"Daytime average wind speed" units:"m s-1"`
	WindAM []float64 `nc:"wind_am" desc:"Morning wind speed" units:"m s-1"`
	WindPM []float64 `nc:"wind_pm" desc:"Afternoon wind speed" units:"m s-1"`

	CO2 []float64 `nc:"co2" desc:"Atmospheric CO2 concentration" units:"µmol mol-1"`

	AtmosPress []float64 `nc:"atmos_press,optional" desc:"Daytime average atmospheric pressure" units:"kPa"`

	// Prescribed vegetation, used in place of a coupled growth model.
	GPP   []float64 `nc:"gpp,optional" desc:"Gross primary production" units:"g C m-2 d-1"`
	GPPAM []float64 `nc:"gpp_am,optional" desc:"Morning gross primary production" units:"g C m-2"`
	GPPPM []float64 `nc:"gpp_pm,optional" desc:"Afternoon gross primary production" units:"g C m-2"`
	WUE   []float64 `nc:"wue,optional" desc:"Water-use efficiency" units:"g C kg-1 H2O"`
	LAI   []float64 `nc:"lai,optional" desc:"Leaf area index" units:"m2 m-2"`
	Canht []float64 `nc:"canht,optional" desc:"Canopy height" units:"m"`
}

// metField describes one series in MetData.
type metField struct {
	index      int
	name       string
	optional   bool
	desc, unit string
}

var metFields []metField

func init() {
	t := reflect.TypeOf(MetData{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("nc"), ",")
		metFields = append(metFields, metField{
			index:    i,
			name:     tag[0],
			optional: len(tag) > 1 && tag[1] == "optional",
			desc:     f.Tag.Get("desc"),
			unit:     f.Tag.Get("units"),
		})
	}
}

// series returns a pointer to the series of m described by f.
func (m *MetData) series(f metField) *[]float64 {
	return reflect.ValueOf(m).Elem().Field(f.index).Addr().Interface().(*[]float64)
}

// Len returns the number of days of forcing.
func (m *MetData) Len() int { return len(m.Tair) }

// Check returns an error if a required series is missing or if the
// series are not all the same length.
func (m *MetData) Check() error {
	n := m.Len()
	if n == 0 {
		return fmt.Errorf("%w: no days of forcing", ErrForcing)
	}
	for _, f := range metFields {
		s := *m.series(f)
		if s == nil && f.optional {
			continue
		}
		if len(s) != n {
			return fmt.Errorf("%w: series %s has %d days but tair has %d", ErrForcing, f.name, len(s), n)
		}
	}
	return nil
}

// MetDay holds the forcing for one day.
type MetDay struct {
	Tair, Tam, Tpm         float64
	SWRad, SWRadAM, SWRadPM float64
	Rain                   float64
	VPDAvg, VPDAM, VPDPM   float64
	Wind, WindAM, WindPM   float64
	CO2                    float64

	// Press is the atmospheric pressure. It is zero if
	// MetData.AtmosPress is nil.
	Press float64
}

// Day returns the forcing for the given day index.
func (m *MetData) Day(day int) (MetDay, error) {
	if day < 0 || day >= m.Len() {
		return MetDay{}, fmt.Errorf("%w: day %d is outside of the forcing period [0, %d)", ErrForcing, day, m.Len())
	}
	d := MetDay{
		Tair: m.Tair[day], Tam: m.Tam[day], Tpm: m.Tpm[day],
		SWRad: m.SWRad[day], SWRadAM: m.SWRadAM[day], SWRadPM: m.SWRadPM[day],
		Rain:   m.Rain[day],
		VPDAvg: m.VPDAvg[day], VPDAM: m.VPDAM[day], VPDPM: m.VPDPM[day],
		Wind: m.Wind[day], WindAM: m.WindAM[day], WindPM: m.WindPM[day],
		CO2: m.CO2[day],
	}
	if m.AtmosPress != nil {
		d.Press = m.AtmosPress[day]
	}
	return d, nil
}
