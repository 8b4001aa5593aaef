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
// Package forestwaterutil provides the command-line interface to the
// ForestWater model.
package forestwaterutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/forestwater"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to ForestWater.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of log messages to print.
              Options are "panic", "fatal", "error", "warning", "info", and
              "debug". At the debug level, the water balance of every
              simulated day is printed.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If it is empty, log messages are
              only written to standard output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir is the directory where one output file per site
              will be written. Files are named after the site. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "OutputFormat",
			usage: `
              OutputFormat is the format of the output files. Options are
              "nc" (netCDF), "csv", and "xlsx" (Microsoft Excel).`,
			shorthand:  "f",
			defaultVal: "nc",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "PlotVariables",
			usage: `
              PlotVariables are the output variables to be plotted,
              including any derived variables from the [Output] table of
              the site files. All of the variables must have the same units.`,
			defaultVal: []string{"Transpiration", "SoilEvap", "Runoff"},
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "NumProcs",
			usage: `
              NumProcs is the maximum number of sites to simulate at once.
              If it is less than one, all available processors are used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "TopsoilDepth",
			usage: `
              TopsoilDepth is the depth of the topsoil layer [mm], used to
              calculate its water holding capacity.`,
			defaultVal: forestwater.DefaultParams().TopsoilDepth,
			flagsets:   []*pflag.FlagSet{soilCmd.Flags()},
		},
		{
			name: "RootingDepth",
			usage: `
              RootingDepth is the depth of the root zone [mm], used to
              calculate its water holding capacity.`,
			defaultVal: forestwater.DefaultParams().RootingDepth,
			flagsets:   []*pflag.FlagSet{soilCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("FORESTWATER")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(soilCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("forestwater: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "forestwater",
	Short: "A daily forest water balance model.",
	Long: `ForestWater simulates the daily water balance of forest sites: rainfall
interception, transpiration, soil evaporation, and the storage of water in a
two-layer soil. Use the subcommands specified below to access the model
functionality.

Each site is described by a TOML site file with the tables [Site], [Control],
[Params], and [State], and is driven by daily meteorology in a netCDF file.
An optional [Output] table defines derived output variables as expressions of
the recorded ones, for example Drainage = "ERain - Transpiration - SoilEvap".

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'FORESTWATER_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ForestWater.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ForestWater v%s\n", forestwater.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs site simulations.
var runCmd = &cobra.Command{
	Use:   "run site.toml [site.toml...]",
	Short: "Run the model.",
	Long: `run simulates each of the sites described by the given site files,
running several sites at once when more than one processor is available,
and writes the daily results for each site to a file in OutputDir.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(
			cmd,
			Cfg.GetString("LogFile"),
			Cfg.GetString("LogLevel"),
			args,
			os.ExpandEnv(Cfg.GetString("OutputDir")),
			Cfg.GetString("OutputFormat"),
			nil,
			Cfg.GetInt("NumProcs"),
		)
	},
	DisableAutoGenTag: true,
}

// plotCmd is a command that runs site simulations and plots the results.
var plotCmd = &cobra.Command{
	Use:   "plot site.toml [site.toml...]",
	Short: "Run the model and plot the results.",
	Long: `plot simulates each of the sites described by the given site files
and writes a PNG time-series plot of PlotVariables for each site to OutputDir.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := cast.ToStringSliceE(Cfg.Get("PlotVariables"))
		if err != nil {
			return fmt.Errorf("forestwater: reading 'PlotVariables': %v", err)
		}
		return Run(
			cmd,
			Cfg.GetString("LogFile"),
			Cfg.GetString("LogLevel"),
			args,
			os.ExpandEnv(Cfg.GetString("OutputDir")),
			"png",
			vars,
			Cfg.GetInt("NumProcs"),
		)
	},
	DisableAutoGenTag: true,
}

// soilCmd is a command that prints soil hydraulic properties.
var soilCmd = &cobra.Command{
	Use:   "soil texture [texture...]",
	Short: "Print soil hydraulic properties.",
	Long: `soil prints the hydraulic properties that are derived from each of the
given soil texture classes, for example "loam" or "sandy_clay_loam", as they
are calculated when calc_sw_params is set in a site file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Soil(cmd.OutOrStdout(), args,
			cast.ToFloat64(Cfg.Get("TopsoilDepth")),
			cast.ToFloat64(Cfg.Get("RootingDepth")),
		)
	},
	DisableAutoGenTag: true,
}
