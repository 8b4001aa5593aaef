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
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Plot draws a time series of the named variables to w as a PNG image.
// All of the variables must have the same units.
func (o *Output) Plot(w io.Writer, vars ...string) error {
	if len(vars) == 0 {
		return fmt.Errorf("forestwater: no variables to plot")
	}
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.X.Tick.Marker = plot.TimeTicks{Format: dateFormat}
	units, err := o.Units(vars[0])
	if err != nil {
		return err
	}
	p.Y.Label.Text = units

	for i, name := range vars {
		data, err := o.Series(name)
		if err != nil {
			return err
		}
		if u, _ := o.Units(name); u != units {
			return fmt.Errorf("forestwater: can't plot %s [%s] on the same axis as %s [%s]",
				name, u, vars[0], units)
		}
		xy := make(plotter.XYs, len(data))
		for j, v := range data {
			xy[j].X = float64(o.Dates[j].Unix())
			xy[j].Y = v
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(name, l)
	}

	img := vgimg.New(7*vg.Inch, 3*vg.Inch)
	p.Draw(draw.New(img))
	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}
