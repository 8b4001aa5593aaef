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

	"github.com/go-playground/validator/v10"
	"github.com/spatialmodel/forestwater/science/evap"
	"github.com/spatialmodel/forestwater/science/soil"
)

// Params holds the site parameters of the water balance. Fields marked
// as derived are filled in by SoilMoisture.InitialiseParameters when
// Control.CalcSWParams is set.
type Params struct {
	Albedo          float64 `toml:"albedo" validate:"gte=0,lte=1" desc:"Canopy albedo" units:"-"`
	InterceptFrac   float64 `toml:"intercep_frac" validate:"gte=0,lte=1" desc:"Maximum fraction of rainfall intercepted by the canopy" units:"-"`
	MaxInterceptLAI float64 `toml:"max_intercep_lai" validate:"gt=0" desc:"LAI above which interception is at its maximum" units:"m2 m-2"`

	Dz0vDh        float64 `toml:"dz0v_dh" validate:"gt=0,lt=1" desc:"Ratio of momentum roughness length to canopy height" units:"-"`
	DisplaceRatio float64 `toml:"displace_ratio" validate:"gte=0,lt=1" desc:"Ratio of zero plane displacement height to canopy height" units:"-"`
	Z0hZ0m        float64 `toml:"z0h_z0m" validate:"gt=0" desc:"Ratio of heat to momentum roughness length" units:"-"`

	G1 float64 `toml:"g1" validate:"gte=0" desc:"Stomatal slope parameter" units:"kPa^0.5"`

	// Elevation is used to estimate atmospheric pressure when it is
	// not part of the forcing.
	Elevation float64 `toml:"elevation" validate:"gte=-500,lt=9000" desc:"Site elevation" units:"m"`

	WCapacTopsoil float64 `toml:"wcapac_topsoil" validate:"gte=0" desc:"Plant-available water capacity of the topsoil" units:"mm"`
	WCapacRoot    float64 `toml:"wcapac_root" validate:"gte=0" desc:"Plant-available water capacity of the root zone" units:"mm"`

	TopsoilType  soil.Texture `toml:"topsoil_type"`
	RootsoilType soil.Texture `toml:"rootsoil_type"`
	TopsoilDepth float64      `toml:"topsoil_depth" validate:"gte=0" desc:"Depth of the topsoil layer" units:"mm"`
	RootingDepth float64      `toml:"rooting_depth" validate:"gte=0" desc:"Depth of the root zone" units:"mm"`

	// Derived hydraulic properties.
	BTopsoil        float64 `toml:"b_topsoil" validate:"gte=0"`
	PsiSatTopsoil   float64 `toml:"psi_sat_topsoil" validate:"lte=0" units:"MPa"`
	ThetaSatTopsoil float64 `toml:"theta_sat_topsoil" validate:"gte=0,lte=1"`
	BRoot           float64 `toml:"b_root" validate:"gte=0"`
	PsiSatRoot      float64 `toml:"psi_sat_root" validate:"lte=0" units:"MPa"`
	ThetaSatRoot    float64 `toml:"theta_sat_root" validate:"gte=0,lte=1"`

	// Landsberg and Waring stress curve parameters. If all four are
	// zero they are derived from the soil textures.
	CThetaTopsoil float64 `toml:"ctheta_topsoil" validate:"gte=0"`
	NThetaTopsoil float64 `toml:"ntheta_topsoil" validate:"gte=0"`
	CThetaRoot    float64 `toml:"ctheta_root" validate:"gte=0"`
	NThetaRoot    float64 `toml:"ntheta_root" validate:"gte=0"`

	FractupSoil float64 `toml:"fractup_soil" validate:"gte=0,lte=1" desc:"Fraction of transpiration drawn from the topsoil" units:"-"`
	Qs          float64 `toml:"qs" validate:"gte=0" desc:"Exponent of the power-law stress modifier" units:"-"`
}

// DefaultParams returns parameters for a generic temperate forest on
// loam.
func DefaultParams() *Params {
	return &Params{
		Albedo:          0.123,
		InterceptFrac:   0.15,
		MaxInterceptLAI: 3,
		Dz0vDh:          evap.DefaultCanopy.Dz0vDh,
		DisplaceRatio:   evap.DefaultCanopy.DisplaceRatio,
		Z0hZ0m:          evap.DefaultCanopy.Z0hZ0m,
		G1:              2.74,
		Elevation:       evap.DefaultElevation,
		TopsoilType:     soil.Loam,
		RootsoilType:    soil.Loam,
		TopsoilDepth:    350,
		RootingDepth:    1000,
		FractupSoil:     0.4,
		Qs:              1,
	}
}

var validate = validator.New()

// Validate checks that all parameters are within their allowed ranges.
func (p *Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// canopy returns the canopy roughness described by p.
func (p *Params) canopy() evap.Canopy {
	return evap.Canopy{Dz0vDh: p.Dz0vDh, DisplaceRatio: p.DisplaceRatio, Z0hZ0m: p.Z0hZ0m}
}
