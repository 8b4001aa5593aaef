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
	"os"
	"path/filepath"
	"runtime"

	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/forestwater"
	"github.com/spatialmodel/forestwater/internal/hash"
)

// forcingCache reads forcing files, so that sites that share a forcing
// file only read it once.
type forcingCache struct {
	c *requestcache.Cache
}

// newForcingCache returns a cache that reads up to workers files at once
// and keeps up to size of them in memory.
func newForcingCache(workers, size int) *forcingCache {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if size < 1 {
		size = 1
	}
	return &forcingCache{
		c: requestcache.NewCache(readForcing, workers, requestcache.Deduplicate(),
			requestcache.Memory(size)),
	}
}

func readForcing(ctx context.Context, request interface{}) (interface{}, error) {
	path := request.(string)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("forestwater: opening forcing file: %v", err)
	}
	defer f.Close()
	m, err := forestwater.ReadMetNetCDF(f)
	if err != nil {
		return nil, fmt.Errorf("forestwater: forcing file %s: %w", path, err)
	}
	return m, nil
}

// forcingFile identifies a version of a forcing file.
type forcingFile struct {
	Path    string
	Size    int64
	ModTime int64
}

// Load returns the forcing in the file at path. The returned value is
// shared and must not be modified. The file is read again if it has
// changed since it was last read.
func (fc *forcingCache) Load(ctx context.Context, path string) (*forestwater.MetData, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("forestwater: forcing file: %v", err)
	}
	key := hash.Key(forcingFile{Path: path, Size: fi.Size(), ModTime: fi.ModTime().UnixNano()})
	r := fc.c.NewRequest(ctx, path, key)
	iface, err := r.Result()
	if err != nil {
		return nil, err
	}
	return iface.(*forestwater.MetData), nil
}
