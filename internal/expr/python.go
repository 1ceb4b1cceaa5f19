package expr

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/aplab/internal/pyfmt"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Floor division and modulo round towards negative infinity, as in Python,
// where hclsyntax's % truncates towards zero.
var (
	opFloorDivide = &hclsyntax.Operation{Impl: floorFunc(false), Type: cty.Number}
	opFloorModulo = &hclsyntax.Operation{Impl: floorFunc(true), Type: cty.Number}
)

var errZeroDivisor = errors.New("division by zero")

func floorFunc(remainder bool) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "a", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			a, b := args[0].AsBigFloat(), args[1].AsBigFloat()
			if b.Sign() == 0 {
				return cty.UnknownVal(cty.Number), errZeroDivisor
			}
			q := floorQuotient(a, b)
			if !remainder {
				return cty.NumberVal(q), nil
			}
			r := new(big.Float).Sub(a, new(big.Float).Mul(b, q))
			return cty.NumberVal(r), nil
		},
	})
}

// floorQuotient returns floor(a / b). b must not be zero.
func floorQuotient(a, b *big.Float) *big.Float {
	q := new(big.Float).Quo(a, b)
	if q.IsInt() {
		return q
	}
	i, _ := q.Int(nil)
	fq := new(big.Float).SetInt(i)
	if q.Sign() < 0 {
		fq.Sub(fq, big.NewFloat(1))
	}
	return fq
}

// rewriteFloorDivisions turns every `//` outside a string literal into `/ `
// so hclsyntax does not read it as a comment, and returns the byte offsets of
// the rewritten operators. Scanning stops at `#`, which starts a comment in
// both languages.
func rewriteFloorDivisions(src string) (string, []int, error) {
	b := []byte(src)
	var at []int
	inString := false
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '#':
			return string(b), at, nil
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			return "", nil, fmt.Errorf("invalid expression: %q is not an operator", "/*")
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			b[i+1] = ' '
			at = append(at, i)
			i++
		}
	}
	return string(b), at, nil
}

// useFloorOperators swaps the operations of e for their Python counterparts:
// every % becomes a floor modulo and every / found at one of the offsets in
// floorAt becomes a floor division.
func useFloorOperators(e hclsyntax.Expression, floorAt []int) {
	hclsyntax.VisitAll(e, func(node hclsyntax.Node) hcl.Diagnostics {
		bin, ok := node.(*hclsyntax.BinaryOpExpr)
		if !ok {
			return nil
		}
		switch bin.Op {
		case hclsyntax.OpModulo:
			bin.Op = opFloorModulo
		case hclsyntax.OpDivide:
			from, to := bin.LHS.Range().End.Byte, bin.RHS.Range().Start.Byte
			for _, pos := range floorAt {
				if pos >= from && pos < to {
					bin.Op = opFloorDivide
					break
				}
			}
		}
		return nil
	})
}

var pythonOperators = map[string]string{
	"&&": "and",
	"||": "or",
	"!":  "not ",
}

// PythonString renders the step with Python's spelling of operators and
// values, e.g. `True and False = False`.
func (s Step) PythonString() string {
	op := s.Operator
	if py, ok := pythonOperators[op]; ok {
		op = py
	}
	return s.render(op, FormatPython)
}

// PythonString formats the final value the way Python prints it.
func (r *Result) PythonString() string { return FormatPython(r.Value) }

// FormatPython renders a value the way Python's repr() would.
func FormatPython(v cty.Value) string {
	if v.IsNull() {
		return "None"
	}
	if !v.IsKnown() {
		return "?"
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return pyfmt.Bool(v.True())
	case ty == cty.String:
		return pyfmt.Str(v.AsString())
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, FormatPython(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return Format(v)
}
