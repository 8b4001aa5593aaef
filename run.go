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
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunSites initializes, runs and cleans up the given sites, running up to
// nprocs of them concurrently. If nprocs is less than one, it is set to
// the number of available processors. The first error encountered
// cancels the remaining sites and is returned.
func RunSites(ctx context.Context, nprocs int, sites ...*Site) error {
	if nprocs < 1 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(nprocs)
	for _, s := range sites {
		s := s
		g.Go(func() error {
			if err := s.Init(); err != nil {
				return err
			}
			if err := s.RunContext(ctx); err != nil {
				return err
			}
			return s.Cleanup()
		})
	}
	return g.Wait()
}
