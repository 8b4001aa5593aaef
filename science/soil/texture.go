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

// Package soil provides soil texture classes, pedotransfer functions
// that estimate hydraulic properties from texture, and the soil-moisture
// stress formulations that convert available water into a plant
// water-stress factor.
package soil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTexture is returned when a soil texture class is not
// recognized or has no parameters for the requested function.
var ErrInvalidTexture = errors.New("soil: invalid soil type")

// Texture is a USDA soil texture class.
type Texture int

// Soil texture classes.
const (
	Unknown Texture = iota
	Sand
	LoamySand
	SandyLoam
	Loam
	Silt
	SiltyLoam
	SandyClayLoam
	ClayLoam
	SiltyClayLoam
	SandyClay
	SiltyClay
	Clay
)

var textureNames = map[Texture]string{
	Sand:          "sand",
	LoamySand:     "loamy_sand",
	SandyLoam:     "sandy_loam",
	Loam:          "loam",
	Silt:          "silt",
	SiltyLoam:     "silty_loam",
	SandyClayLoam: "sandy_clay_loam",
	ClayLoam:      "clay_loam",
	SiltyClayLoam: "silty_clay_loam",
	SandyClay:     "sandy_clay",
	SiltyClay:     "silty_clay",
	Clay:          "clay",
}

func (t Texture) String() string {
	if s, ok := textureNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Texture(%d)", int(t))
}

// ParseTexture returns the texture with the given name. Names are
// case-insensitive and may use spaces or underscores, e.g. "sandy loam".
func ParseTexture(s string) (Texture, error) {
	name := strings.Replace(strings.ToLower(strings.TrimSpace(s)), " ", "_", -1)
	for t, n := range textureNames {
		if n == name {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidTexture, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Texture) UnmarshalText(b []byte) error {
	tt, err := ParseTexture(string(b))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Texture) MarshalText() ([]byte, error) {
	s, ok := textureNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTexture, int(t))
	}
	return []byte(s), nil
}

// Fractions holds the silt, sand and clay fractions of a soil.
type Fractions struct {
	Silt, Sand, Clay float64
}

// cosbyFractions are the representative texture fractions of each
// class used with the Cosby et al. (1984) regressions.
var cosbyFractions = map[Texture]Fractions{
	Sand:          {0.05, 0.92, 0.03},
	LoamySand:     {0.12, 0.82, 0.06},
	SandyLoam:     {0.32, 0.58, 0.1},
	Loam:          {0.39, 0.43, 0.18},
	SiltyLoam:     {0.7, 0.17, 0.13},
	SandyClayLoam: {0.15, 0.58, 0.27},
	ClayLoam:      {0.34, 0.32, 0.34},
	SiltyClayLoam: {0.56, 0.1, 0.34},
	SandyClay:     {0.06, 0.52, 0.42},
	SiltyClay:     {0.47, 0.06, 0.47},
	Clay:          {0.2, 0.22, 0.58},
}

// TextureFractions returns the representative silt, sand and clay
// fractions of texture t. Silt has no representative fractions.
func TextureFractions(t Texture) (Fractions, error) {
	f, ok := cosbyFractions[t]
	if !ok {
		return Fractions{}, fmt.Errorf("%w: no texture fractions for %v", ErrInvalidTexture, t)
	}
	return f, nil
}

// LWParams holds the Landsberg and Waring (1997) soil-moisture stress
// curve parameters.
type LWParams struct {
	C float64 // moisture ratio at which the modifier is 0.5
	N float64 // curve shape
}

// landsbergWaring is Table 7.1 of Landsberg and Sands (2011).
var landsbergWaring = map[Texture]LWParams{
	Clay:          {0.4, 3.0},
	ClayLoam:      {0.5, 5.0},
	Loam:          {0.55, 6.0},
	LoamySand:     {0.65, 8.0},
	Sand:          {0.7, 9.0},
	SandyClay:     {0.45, 4.0},
	SandyClayLoam: {0.525, 5.5},
	SandyLoam:     {0.6, 7.0},
	Silt:          {0.625, 7.5},
	SiltyClay:     {0.425, 3.5},
	SiltyClayLoam: {0.475, 4.5},
	SiltyLoam:     {0.575, 6.5},
}

// LandsbergWaring returns the stress curve parameters for texture t.
func LandsbergWaring(t Texture) (LWParams, error) {
	p, ok := landsbergWaring[t]
	if !ok {
		return LWParams{}, fmt.Errorf("%w: no Landsberg-Waring parameters for %v", ErrInvalidTexture, t)
	}
	return p, nil
}
