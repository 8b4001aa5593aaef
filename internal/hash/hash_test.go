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
package hash

import "testing"

type file struct {
	Path    string
	Size    int64
	Options map[string]float64
}

func TestKey(t *testing.T) {
	a := file{Path: "met.nc", Size: 10, Options: map[string]float64{"x": 1, "y": 2, "z": 3}}
	b := file{Path: "met.nc", Size: 10, Options: map[string]float64{"z": 3, "y": 2, "x": 1}}
	if Key(a) != Key(b) {
		t.Error("equal objects should have equal keys")
	}
	if Key(&a) != Key(&b) {
		t.Error("keys should not depend on pointer addresses")
	}
	b.Size = 11
	if Key(a) == Key(b) {
		t.Error("different objects should have different keys")
	}
}
