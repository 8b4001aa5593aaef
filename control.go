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
	"strconv"
	"strings"

	"github.com/spatialmodel/forestwater/science/soil"
)

// TransModel selects how canopy transpiration is calculated.
type TransModel int

// Transpiration models.
const (
	// TransWUE divides gross primary production by water-use efficiency.
	TransWUE TransModel = iota
	// TransPenmanMonteith uses the Penman-Monteith equation with a
	// stomatal conductance derived from assimilation.
	TransPenmanMonteith
	// TransPriestleyTaylor uses the Priestley-Taylor potential rate.
	TransPriestleyTaylor
)

var transModelNames = []string{"WUE", "PENMAN_MONTEITH", "PRIESTLEY_TAYLOR"}

func (t TransModel) String() string {
	if t >= 0 && int(t) < len(transModelNames) {
		return transModelNames[t]
	}
	return fmt.Sprintf("TransModel(%d)", int(t))
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts
// either the model name or its integer code.
func (t *TransModel) UnmarshalText(b []byte) error {
	i, err := parseEnum(string(b), transModelNames)
	if err != nil {
		return fmt.Errorf("%w: transpiration model %v", ErrUnmodeledControl, err)
	}
	*t = TransModel(i)
	return nil
}

// AssimModel identifies the assimilation model that supplies
// gross primary production.
type AssimModel int

// Assimilation models.
const (
	// BEWDY supplies a single daily value.
	BEWDY AssimModel = iota
	// MATE supplies separate morning and afternoon values.
	MATE
)

var assimModelNames = []string{"BEWDY", "MATE"}

func (a AssimModel) String() string {
	if a >= 0 && int(a) < len(assimModelNames) {
		return assimModelNames[a]
	}
	return fmt.Sprintf("AssimModel(%d)", int(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AssimModel) UnmarshalText(b []byte) error {
	i, err := parseEnum(string(b), assimModelNames)
	if err != nil {
		return fmt.Errorf("%w: assimilation model %v", ErrUnmodeledControl, err)
	}
	*a = AssimModel(i)
	return nil
}

// parseEnum returns the index of s in names, ignoring case, or s
// interpreted as an index.
func parseEnum(s string, names []string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(s, n) {
			return i, nil
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || i >= len(names) {
		return 0, fmt.Errorf("%q is not one of %v", s, names)
	}
	return i, nil
}

// Control holds the flags that select model formulations.
type Control struct {
	TransModel    TransModel       `toml:"trans_model"`
	AssimModel    AssimModel       `toml:"assim_model"`
	SWStressModel soil.StressModel `toml:"sw_stress_model"`

	// CalcSWParams specifies whether soil hydraulic parameters and
	// water holding capacities should be derived from soil texture.
	CalcSWParams bool `toml:"calc_sw_params"`
}

// Validate returns ErrUnmodeledControl if c holds an unknown flag value.
func (c *Control) Validate() error {
	if c.TransModel < TransWUE || c.TransModel > TransPriestleyTaylor {
		return fmt.Errorf("%w: %v", ErrUnmodeledControl, c.TransModel)
	}
	if c.AssimModel != BEWDY && c.AssimModel != MATE {
		return fmt.Errorf("%w: %v", ErrUnmodeledControl, c.AssimModel)
	}
	if err := c.SWStressModel.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnmodeledControl, err)
	}
	return nil
}
