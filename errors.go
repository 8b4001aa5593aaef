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

	"github.com/spatialmodel/forestwater/science/soil"
)

var (
	// ErrInvalidSoilType is returned when a soil texture is not
	// recognized.
	ErrInvalidSoilType = soil.ErrInvalidTexture

	// ErrUnmodeledControl is returned for control flags or combinations
	// of control flags that are not modelled.
	ErrUnmodeledControl = errors.New("forestwater: unmodeled control combination")

	// ErrNumericDomain is returned when an input would lead to a
	// division by zero or another undefined operation.
	ErrNumericDomain = errors.New("forestwater: input outside of numeric domain")

	// ErrInvalidParams is returned when model parameters fail validation.
	ErrInvalidParams = errors.New("forestwater: invalid parameters")

	// ErrForcing is returned when meteorological forcing data are
	// missing or inconsistent.
	ErrForcing = errors.New("forestwater: invalid forcing data")
)
