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
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Site holds the data for a simulation of a single site.
type Site struct {
	Name     string
	Start    time.Time // date of the first day of forcing
	Latitude float64   // degrees

	Control *Control
	Params  *Params
	State   *State
	Fluxes  *Fluxes
	Met     *MetData

	// Day is the index of the current day in Met, and DayLen is its
	// length [hours].
	Day    int
	DayLen float64

	// Done specifies whether the simulation is finished.
	Done bool

	SoilMoisture *SoilMoisture
	WaterBalance *WaterBalance

	// InitFuncs are run once before the simulation starts.
	InitFuncs []SiteManipulator
	// RunFuncs are run in order once per day until Done is true.
	RunFuncs []SiteManipulator
	// CleanupFuncs are run once after the simulation finishes.
	CleanupFuncs []SiteManipulator
}

// SiteManipulator is a class of functions that operate on a site.
type SiteManipulator func(s *Site) error

// NewSite returns a site with the standard set of manipulators, whose
// daily results are stored in o. p and st are copied, so the same
// values can be used to create several sites; m is shared.
func NewSite(name string, start time.Time, latitude float64, c Control, p Params, st State, m *MetData, o *Output, log logrus.FieldLogger) *Site {
	s := &Site{
		Name:     name,
		Start:    start,
		Latitude: latitude,
		Control:  &c,
		Params:   &p,
		State:    &st,
		Fluxes:   new(Fluxes),
		Met:      m,
	}
	s.InitFuncs = []SiteManipulator{SetupModel()}
	s.RunFuncs = []SiteManipulator{
		StartDay(),
		Prescribed(),
		SoilWaterStress(),
		CalculateWaterBalance(),
		Record(o),
		LogDay(log),
		NextDay(),
	}
	s.CleanupFuncs = []SiteManipulator{LogSummary(o, log)}
	return s
}

// Date returns the date of the current day.
func (s *Site) Date() time.Time { return s.Start.AddDate(0, 0, s.Day) }

// Init initializes the simulation by running s.InitFuncs.
func (s *Site) Init() error {
	for i, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return fmt.Errorf("forestwater: site %s: init function %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// Run carries out the simulation by running s.RunFuncs until s.Done is
// true.
func (s *Site) Run() error {
	return s.RunContext(context.Background())
}

// RunContext is like Run, but returns early with the error of ctx if
// ctx is cancelled between days.
func (s *Site) RunContext(ctx context.Context) error {
	for !s.Done {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, f := range s.RunFuncs {
			if err := f(s); err != nil {
				return fmt.Errorf("forestwater: site %s: %s: %w", s.Name, s.Date().Format("2006-01-02"), err)
			}
		}
	}
	return nil
}

// Cleanup finishes the simulation by running s.CleanupFuncs.
func (s *Site) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return fmt.Errorf("forestwater: site %s: cleanup: %w", s.Name, err)
		}
	}
	return nil
}

// SetupModel returns a function that validates the site configuration,
// derives soil parameters and creates the soil moisture and water
// balance calculators.
func SetupModel() SiteManipulator {
	return func(s *Site) error {
		if err := s.Control.Validate(); err != nil {
			return err
		}
		if err := s.Params.Validate(); err != nil {
			return err
		}
		s.SoilMoisture = NewSoilMoisture(s.Control, s.Params, s.State)
		if err := s.SoilMoisture.InitialiseParameters(); err != nil {
			return err
		}
		wb, err := NewWaterBalance(s.Control, s.Params, s.State, s.Fluxes, s.Met)
		if err != nil {
			return err
		}
		s.WaterBalance = wb
		s.State.PAWaterTopsoil = clip(s.State.PAWaterTopsoil, 0, s.Params.WCapacTopsoil)
		s.State.PAWaterRoot = clip(s.State.PAWaterRoot, 0, s.Params.WCapacRoot)
		return nil
	}
}

// StartDay returns a function that clears the previous day's water
// fluxes and calculates the length of the current day.
func StartDay() SiteManipulator {
	return func(s *Site) error {
		s.Fluxes.ResetWater()
		s.DayLen = DayLengthOn(s.Date(), s.Latitude)
		return nil
	}
}

// Prescribed returns a function that copies any vegetation series in
// the forcing into the site fluxes and state for the current day.
func Prescribed() SiteManipulator {
	return func(s *Site) error {
		m, d := s.Met, s.Day
		for _, v := range []struct {
			series []float64
			dst    *float64
		}{
			{m.GPP, &s.Fluxes.GPPgCm2},
			{m.GPPAM, &s.Fluxes.GPPAM},
			{m.GPPPM, &s.Fluxes.GPPPM},
			{m.WUE, &s.Fluxes.WUE},
			{m.LAI, &s.State.LAI},
			{m.Canht, &s.State.Canht},
		} {
			if v.series != nil {
				*v.dst = v.series[d]
			}
		}
		return nil
	}
}

// SoilWaterStress returns a function that updates the water-stress
// factors in the site state.
func SoilWaterStress() SiteManipulator {
	return func(s *Site) error {
		top, root, err := s.SoilMoisture.CalculateSoilWaterFac()
		if err != nil {
			return err
		}
		s.State.WTFacTopsoil, s.State.WTFacRoot = top, root
		return nil
	}
}

// CalculateWaterBalance returns a function that calculates the current
// day's water balance.
func CalculateWaterBalance() SiteManipulator {
	return func(s *Site) error {
		return s.WaterBalance.CalculateWaterBalance(s.Day, s.DayLen)
	}
}

// NextDay returns a function that advances the simulation by one day
// and sets s.Done at the end of the forcing.
func NextDay() SiteManipulator {
	return func(s *Site) error {
		s.Day++
		if s.Day >= s.Met.Len() {
			s.Done = true
		}
		return nil
	}
}

// LogDay returns a function that logs the current day's results at
// the debug level.
func LogDay(log logrus.FieldLogger) SiteManipulator {
	return func(s *Site) error {
		log.WithFields(logrus.Fields{
			"site":          s.Name,
			"date":          s.Date().Format("2006-01-02"),
			"transpiration": s.Fluxes.Transpiration,
			"soil_evap":     s.Fluxes.SoilEvap,
			"runoff":        s.Fluxes.Runoff,
			"pawater_root":  s.State.PAWaterRoot,
			"wtfac_root":    s.State.WTFacRoot,
		}).Debug("day finished")
		return nil
	}
}

// LogSummary returns a function that logs the total water fluxes of the
// simulation.
func LogSummary(o *Output, log logrus.FieldLogger) SiteManipulator {
	return func(s *Site) error {
		fields := logrus.Fields{"site": s.Name, "days": o.Len()}
		for name, t := range o.Totals() {
			fields[name] = fmt.Sprintf("%.4g", t)
		}
		log.WithFields(fields).Info("simulation finished")
		return nil
	}
}
