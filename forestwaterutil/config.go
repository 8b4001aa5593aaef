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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spatialmodel/forestwater"
)

// SiteConfig holds the contents of a site file.
type SiteConfig struct {
	Site struct {
		Name     string  `validate:"required"`
		Start    string  `validate:"required"` // YYYY-MM-DD
		Latitude float64 `validate:"gte=-90,lte=90"`
		Forcing  string  `validate:"required"` // netCDF forcing file
	}
	Control forestwater.Control
	Params  forestwater.Params
	State   forestwater.State

	// Output maps the names of derived output variables to expressions
	// of the recorded variables, e.g. Drainage = "ERain - ET".
	Output map[string]string
}

var validate = validator.New()

// LoadSite reads a site file. Parameters that are not in the file keep
// their default values. The forcing path may contain environment
// variables, and if it is relative it is taken to be relative to the
// directory of the site file.
func LoadSite(path string) (*SiteConfig, error) {
	cfg := &SiteConfig{Params: *forestwater.DefaultParams()}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("forestwater: reading site file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("forestwater: site file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: site file %s: %v", forestwater.ErrInvalidParams, path, err)
	}
	if _, err := cfg.StartDate(); err != nil {
		return nil, fmt.Errorf("forestwater: site file %s: %w", path, err)
	}
	if err := cfg.Control.Validate(); err != nil {
		return nil, fmt.Errorf("forestwater: site file %s: %w", path, err)
	}
	if err := forestwater.DeriveOutputs(forestwater.NewOutput(), cfg.Output)(nil); err != nil {
		return nil, fmt.Errorf("forestwater: site file %s: [Output]: %w", path, err)
	}

	cfg.Site.Forcing = os.ExpandEnv(cfg.Site.Forcing)
	if !filepath.IsAbs(cfg.Site.Forcing) {
		cfg.Site.Forcing = filepath.Join(filepath.Dir(path), cfg.Site.Forcing)
	}
	return cfg, nil
}

// StartDate returns the date of the first day of forcing.
func (c *SiteConfig) StartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Site.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %v", c.Site.Start, err)
	}
	return t, nil
}
