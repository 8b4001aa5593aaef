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
	"math"
	"regexp"
	"sort"

	"github.com/Knetic/govaluate"
)

// outputFunctions are the functions that can be used in derived output
// expressions.
var outputFunctions = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("exp", 1, arg)
		if err != nil {
			return nil, err
		}
		return math.Exp(x[0]), nil
	},
	"max": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("max", 2, arg)
		if err != nil {
			return nil, err
		}
		return math.Max(x[0], x[1]), nil
	},
	"min": func(arg ...interface{}) (interface{}, error) {
		x, err := floatArgs("min", 2, arg)
		if err != nil {
			return nil, err
		}
		return math.Min(x[0], x[1]), nil
	},
}

func floatArgs(fn string, n int, arg []interface{}) ([]float64, error) {
	if len(arg) != n {
		return nil, fmt.Errorf("forestwater: got %d arguments for function '%s', but needs %d", len(arg), fn, n)
	}
	x := make([]float64, n)
	for i, a := range arg {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("forestwater: argument %d of function '%s' is %v, not a number", i+1, fn, a)
		}
		x[i] = f
	}
	return x, nil
}

var derivedName = regexp.MustCompile(`^[A-Za-z]\w*$`)

// Derive adds a variable called name to o that is calculated each day
// from the recorded variables by expression, for example
// "ERain - Transpiration - SoilEvap". The functions exp(x), max(x, y)
// and min(x, y) are available. Values are calculated for days that
// have already been recorded as well as for days recorded afterwards.
//
// The derived variable keeps the units of its inputs if they all share
// the same units and they are only added and subtracted; otherwise its
// units are "-".
func (o *Output) Derive(name, expression string) error {
	if !derivedName.MatchString(name) {
		return fmt.Errorf("forestwater: derived output variable name %q must start with a letter "+
			"and contain only letters, digits and underscores", name)
	}
	if _, err := o.index(name); err == nil {
		return fmt.Errorf("forestwater: output variable %q already exists", name)
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, outputFunctions)
	if err != nil {
		return fmt.Errorf("forestwater: derived output variable %s: %v", name, err)
	}
	units := ""
	for _, v := range expr.Vars() {
		i, err := o.index(v)
		if err != nil {
			return fmt.Errorf("forestwater: derived output variable %s: %v", name, err)
		}
		switch units {
		case "":
			units = o.vars[i].units
		case o.vars[i].units:
		default:
			units = "-"
		}
	}
	if units == "" || !additive(expr) {
		units = "-"
	}

	v := outputVar{name: name, desc: expression, units: units, expr: expr}
	data := make([]float64, o.Len())
	for d := range data {
		if data[d], err = o.evaluate(v, d); err != nil {
			return err
		}
	}
	o.vars = append(o.vars, v)
	o.data = append(o.data, data)
	return nil
}

// additive reports whether expr only adds and subtracts its operands.
func additive(expr *govaluate.EvaluableExpression) bool {
	for _, t := range expr.Tokens() {
		switch t.Kind {
		case govaluate.VARIABLE, govaluate.NUMERIC, govaluate.CLAUSE, govaluate.CLAUSE_CLOSE:
		case govaluate.PREFIX, govaluate.MODIFIER:
			if op, ok := t.Value.(string); !ok || (op != "+" && op != "-") {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// evaluate returns the value of derived variable v on recorded day d.
// Only the variables that precede v in o are available.
func (o *Output) evaluate(v outputVar, d int) (float64, error) {
	params := make(map[string]interface{})
	for i, ov := range o.vars {
		if ov.name == v.name {
			break
		}
		params[ov.name] = o.data[i][d]
	}
	r, err := v.expr.Evaluate(params)
	if err != nil {
		return math.NaN(), fmt.Errorf("forestwater: evaluating %s = %s: %v", v.name, v.desc, err)
	}
	f, ok := r.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("forestwater: %s = %s evaluates to %v, not a number", v.name, v.desc, r)
	}
	return f, nil
}

// DeriveOutputs returns a function that adds the derived variables in
// exprs, which maps variable names to expressions, to o. Expressions
// may refer to each other in any order as long as there are no cycles.
func DeriveOutputs(o *Output, exprs map[string]string) SiteManipulator {
	return func(*Site) error {
		pending := make([]string, 0, len(exprs))
		for name := range exprs {
			pending = append(pending, name)
		}
		sort.Strings(pending)
		for len(pending) > 0 {
			var next []string
			for _, name := range pending {
				if !o.canDerive(exprs[name]) {
					next = append(next, name)
					continue
				}
				if err := o.Derive(name, exprs[name]); err != nil {
					return err
				}
			}
			if len(next) == len(pending) {
				// Report the missing variable.
				return o.Derive(next[0], exprs[next[0]])
			}
			pending = next
		}
		return nil
	}
}

// canDerive reports whether all of the variables in expression are in o.
// Expressions that do not parse are reported as derivable so that
// Derive can return the parsing error.
func (o *Output) canDerive(expression string) bool {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, outputFunctions)
	if err != nil {
		return true
	}
	for _, v := range expr.Vars() {
		if _, err := o.index(v); err != nil {
			return false
		}
	}
	return true
}
