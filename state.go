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

// State holds the state variables of a site that persist between days.
type State struct {
	PAWaterTopsoil float64 `toml:"pawater_topsoil" desc:"Plant-available water in the topsoil" units:"mm"`
	PAWaterRoot    float64 `toml:"pawater_root" desc:"Plant-available water in the root zone" units:"mm"`
	WTFacTopsoil   float64 `toml:"wtfac_topsoil" desc:"Topsoil water-stress factor" units:"-"`
	WTFacRoot      float64 `toml:"wtfac_root" desc:"Root zone water-stress factor" units:"-"`
	LAI            float64 `toml:"lai" desc:"Leaf area index" units:"m2 m-2"`
	Canht          float64 `toml:"canht" desc:"Canopy height" units:"m"`
	DeltaSWStore   float64 `toml:"delta_sw_store" desc:"Change in root zone water storage" units:"mm"`
}

// Fluxes holds the daily fluxes of a site. GPPgCm2, GPPAM, GPPPM and WUE
// are supplied by the assimilation model; the rest are calculated by
// WaterBalance.
type Fluxes struct {
	Transpiration float64 `desc:"Canopy transpiration" units:"mm d-1"`
	SoilEvap      float64 `desc:"Soil evaporation" units:"mm d-1"`
	Interception  float64 `desc:"Canopy interception" units:"mm d-1"`
	ERain         float64 `desc:"Effective rainfall" units:"mm d-1"`
	ET            float64 `desc:"Evapotranspiration" units:"mm d-1"`
	Runoff        float64 `desc:"Runoff" units:"mm d-1"`
	GsMolM2Sec    float64 `desc:"Stomatal conductance to water vapour" units:"mol m-2 s-1"`
	GaMolM2Sec    float64 `desc:"Canopy boundary layer conductance" units:"mol m-2 s-1"`
	Omega         float64 `desc:"Decoupling coefficient" units:"-"`

	GPPgCm2 float64 `desc:"Gross primary production" units:"g C m-2 d-1"`
	GPPAM   float64 `desc:"Morning gross primary production" units:"g C m-2"`
	GPPPM   float64 `desc:"Afternoon gross primary production" units:"g C m-2"`
	WUE     float64 `desc:"Water-use efficiency" units:"g C kg-1 H2O"`
}

// ResetWater zeroes the fluxes that are calculated by the water balance
// and leaves the assimilation inputs untouched.
func (f *Fluxes) ResetWater() {
	*f = Fluxes{GPPgCm2: f.GPPgCm2, GPPAM: f.GPPAM, GPPPM: f.GPPPM, WUE: f.WUE}
}
