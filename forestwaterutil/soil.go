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
package forestwaterutil

import (
	"io"

	"github.com/kr/pretty"
	"github.com/spatialmodel/forestwater/science/soil"
)

// SoilProperties holds the hydraulic properties derived from a soil
// texture class.
type SoilProperties struct {
	Texture   string
	Fractions soil.Fractions
	soil.Hydraulics
	LandsbergWaring soil.LWParams

	// Plant-available water capacity [mm] of the topsoil and root zone.
	TopsoilCapacity, RootCapacity float64
}

// NewSoilProperties derives the hydraulic properties of the named
// texture class for the given layer depths [mm].
func NewSoilProperties(texture string, topsoilDepth, rootingDepth float64) (*SoilProperties, error) {
	t, err := soil.ParseTexture(texture)
	if err != nil {
		return nil, err
	}
	f, err := soil.TextureFractions(t)
	if err != nil {
		return nil, err
	}
	lw, err := soil.LandsbergWaring(t)
	if err != nil {
		return nil, err
	}
	h := soil.CalcHydraulics(f)
	return &SoilProperties{
		Texture:         t.String(),
		Fractions:       f,
		Hydraulics:      h,
		LandsbergWaring: lw,
		TopsoilCapacity: h.WaterCapacity(topsoilDepth),
		RootCapacity:    h.WaterCapacity(rootingDepth),
	}, nil
}

// Soil writes the properties of each of the named texture classes to w.
func Soil(w io.Writer, textures []string, topsoilDepth, rootingDepth float64) error {
	for _, tex := range textures {
		p, err := NewSoilProperties(tex, topsoilDepth, rootingDepth)
		if err != nil {
			return err
		}
		if _, err := pretty.Fprintf(w, "%# v\n", p); err != nil {
			return err
		}
	}
	return nil
}
