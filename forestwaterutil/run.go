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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/forestwater"
	"github.com/spf13/cobra"
)

// outputFormats are the accepted output file formats.
var outputFormats = []string{"nc", "csv", "xlsx", "png"}

func checkOutputFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	for _, f := range outputFormats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("forestwater: invalid OutputFormat %q; options are %v", format, outputFormats)
}

// Run runs the simulations described by the site files at SitePaths.
//
// CobraCommand is the cobra.Command instance where Run is called from.
// Log messages are written to its output.
//
// LogFile is the path to the desired logfile location. It can include
// environment variables. If it is empty, messages are only written to the
// command output. LogLevel is a logrus level name such as "info" or "debug".
//
// One output file named after each site is written to OutputDir in
// OutputFormat, which is one of "nc", "csv", "xlsx" or "png". For "png",
// PlotVariables are the output variables to plot; they must all have the
// same units.
//
// NumProcs is the maximum number of sites to run at once. If it is less
// than one, all available processors are used.
func Run(CobraCommand *cobra.Command, LogFile, LogLevel string, SitePaths []string, OutputDir, OutputFormat string, PlotVariables []string, NumProcs int) error {
	format, err := checkOutputFormat(OutputFormat)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(LogLevel)
	if err != nil {
		return fmt.Errorf("forestwater: invalid LogLevel: %v", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	var w io.Writer = CobraCommand.OutOrStdout()
	if LogFile = os.ExpandEnv(LogFile); LogFile != "" {
		logfile, err := os.Create(LogFile)
		if err != nil {
			return fmt.Errorf("forestwater: couldn't create log file: %v", err)
		}
		defer logfile.Close()
		w = io.MultiWriter(w, logfile)
	}
	log.SetOutput(w)

	if err := os.MkdirAll(OutputDir, 0755); err != nil {
		return fmt.Errorf("forestwater: creating output directory: %v", err)
	}

	ctx := context.Background()
	forcing := newForcingCache(NumProcs, len(SitePaths))
	sites := make([]*forestwater.Site, len(SitePaths))
	outputs := make([]*forestwater.Output, len(SitePaths))
	names := make(map[string]string)
	for i, path := range SitePaths {
		cfg, err := LoadSite(os.ExpandEnv(path))
		if err != nil {
			return err
		}
		if other, ok := names[cfg.Site.Name]; ok {
			return fmt.Errorf("forestwater: site files %s and %s both describe site %q", other, path, cfg.Site.Name)
		}
		names[cfg.Site.Name] = path

		m, err := forcing.Load(ctx, cfg.Site.Forcing)
		if err != nil {
			return err
		}
		start, _ := cfg.StartDate()
		o := forestwater.NewOutput()
		s := forestwater.NewSite(cfg.Site.Name, start, cfg.Site.Latitude,
			cfg.Control, cfg.Params, cfg.State, m, o, log)
		s.InitFuncs = append(s.InitFuncs, forestwater.DeriveOutputs(o, cfg.Output))

		outFile := filepath.Join(OutputDir, cfg.Site.Name+"."+format)
		if format == "png" {
			s.CleanupFuncs = append(s.CleanupFuncs, savePlot(o, outFile, PlotVariables))
		} else {
			s.CleanupFuncs = append(s.CleanupFuncs, forestwater.SaveOutput(o, outFile))
		}
		log.WithFields(logrus.Fields{
			"site":    cfg.Site.Name,
			"forcing": cfg.Site.Forcing,
			"days":    m.Len(),
			"output":  outFile,
		}).Info("starting simulation")
		sites[i], outputs[i] = s, o
	}

	if err := forestwater.RunSites(ctx, NumProcs, sites...); err != nil {
		return err
	}

	for i, o := range outputs {
		for _, st := range o.Stats() {
			if st.Units != "mm d-1" {
				continue
			}
			log.WithFields(logrus.Fields{
				"site":  sites[i].Name,
				"units": st.Units,
				"mean":  st.Mean,
				"min":   st.Min,
				"max":   st.Max,
			}).Info(st.Name)
		}
	}
	return nil
}

// savePlot returns a function that writes a plot of the given output
// variables to path.
func savePlot(o *forestwater.Output, path string, vars []string) forestwater.SiteManipulator {
	return func(*forestwater.Site) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("forestwater: creating plot file: %v", err)
		}
		if err := o.Plot(f, vars...); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
