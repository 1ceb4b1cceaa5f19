package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// MaxLength bounds the source accepted by Evaluate.
const MaxLength = 200

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("expression is empty")
	// ErrNotAllowed is returned when the expression references variables or
	// calls functions.
	ErrNotAllowed = errors.New("expression may only contain literals and operators")
)

// Step is one operator application, in evaluation order.
type Step struct {
	Operator string
	Operands []cty.Value
	Result   cty.Value
}

// String renders the step as e.g. `3 * 4 = 12`.
func (s Step) String() string { return s.render(s.Operator, Format) }

func (s Step) render(op string, format func(cty.Value) string) string {
	switch len(s.Operands) {
	case 1:
		return fmt.Sprintf("%s%s = %s", op, format(s.Operands[0]), format(s.Result))
	case 2:
		return fmt.Sprintf("%s %s %s = %s", format(s.Operands[0]), op, format(s.Operands[1]), format(s.Result))
	}
	return format(s.Result)
}

// Result is the outcome of a successful evaluation.
type Result struct {
	Value cty.Value
	Steps []Step
}

// String formats the final value.
func (r *Result) String() string { return Format(r.Value) }

var operatorSymbols = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpLogicalNot:         "!",
	hclsyntax.OpEqual:              "==",
	hclsyntax.OpNotEqual:           "!=",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
	hclsyntax.OpNegate:             "-",
	opFloorDivide:                  "//",
	opFloorModulo:                  "%",
}

// Evaluate parses and evaluates src. `//` is floor division and `%` is floor
// modulo, as in Python; `#` starts a comment.
func Evaluate(src string) (*Result, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmpty
	}
	if len(src) > MaxLength {
		return nil, fmt.Errorf("expression is longer than %d characters", MaxLength)
	}

	rewritten, floorAt, err := rewriteFloorDivisions(src)
	if err != nil {
		return nil, err
	}
	parsed, diags := hclsyntax.ParseExpression([]byte(rewritten), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid expression: %s", summary(diags))
	}
	useFloorOperators(parsed, floorAt)

	vars, funcs := references(parsed)
	if len(vars) > 0 {
		return nil, fmt.Errorf("%w: unknown name %q", ErrNotAllowed, vars[0])
	}
	if len(funcs) > 0 {
		return nil, fmt.Errorf("%w: function %q", ErrNotAllowed, funcs[0])
	}

	if diags := hclsyntax.VisitAll(parsed, checkDivision); diags.HasErrors() {
		return nil, fmt.Errorf("cannot evaluate: %s", summary(diags))
	}

	v, diags := parsed.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("cannot evaluate: %s", summary(diags))
	}

	res := &Result{Value: v}
	collectSteps(parsed, &res.Steps)
	return res, nil
}

// checkDivision rejects division and modulo by zero, which cty would
// otherwise answer with an infinity.
func checkDivision(node hclsyntax.Node) hcl.Diagnostics {
	bin, ok := node.(*hclsyntax.BinaryOpExpr)
	if !ok {
		return nil
	}
	switch bin.Op {
	case hclsyntax.OpDivide, hclsyntax.OpModulo, opFloorDivide, opFloorModulo:
	default:
		return nil
	}
	rhs, diags := bin.RHS.Value(nil)
	if diags.HasErrors() || !rhs.IsKnown() || rhs.IsNull() || !rhs.Type().Equals(cty.Number) {
		return nil
	}
	if rhs.AsBigFloat().Sign() == 0 {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Division by zero",
			Subject:  bin.SrcRange.Ptr(),
		}}
	}
	return nil
}

// collectSteps records operator applications in post-order, i.e. in the
// order they are computed.
func collectSteps(e hclsyntax.Expression, steps *[]Step) {
	switch n := e.(type) {
	case *hclsyntax.ParenthesesExpr:
		collectSteps(n.Expression, steps)
	case *hclsyntax.BinaryOpExpr:
		collectSteps(n.LHS, steps)
		collectSteps(n.RHS, steps)
		lhs, ld := n.LHS.Value(nil)
		rhs, rd := n.RHS.Value(nil)
		res, d := n.Value(nil)
		if ld.HasErrors() || rd.HasErrors() || d.HasErrors() {
			return
		}
		*steps = append(*steps, Step{Operator: operatorSymbols[n.Op], Operands: []cty.Value{lhs, rhs}, Result: res})
	case *hclsyntax.UnaryOpExpr:
		collectSteps(n.Val, steps)
		if _, literal := n.Val.(*hclsyntax.LiteralValueExpr); literal && n.Op == hclsyntax.OpNegate {
			return
		}
		val, vd := n.Val.Value(nil)
		res, d := n.Value(nil)
		if vd.HasErrors() || d.HasErrors() {
			return
		}
		*steps = append(*steps, Step{Operator: operatorSymbols[n.Op], Operands: []cty.Value{val}, Result: res})
	case *hclsyntax.ConditionalExpr:
		collectSteps(n.Condition, steps)
		cond, d := n.Condition.Value(nil)
		if d.HasErrors() || !cond.IsKnown() || cond.IsNull() || !cond.Type().Equals(cty.Bool) {
			return
		}
		if cond.True() {
			collectSteps(n.TrueResult, steps)
		} else {
			collectSteps(n.FalseResult, steps)
		}
	case *hclsyntax.TupleConsExpr:
		for _, item := range n.Exprs {
			collectSteps(item, steps)
		}
	}
}

func summary(diags hcl.Diagnostics) string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// Format renders a value the way a learner would write it.
func Format(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsKnown() {
		return "?"
	}
	ty := v.Type()
	switch {
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			return bf.Text('f', 0)
		}
		f, _ := bf.Float64()
		return strconv.FormatFloat(f, 'g', 12, 64)
	case ty == cty.Bool:
		return strconv.FormatBool(v.True())
	case ty == cty.String:
		return strconv.Quote(v.AsString())
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, Format(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ty.FriendlyName()
}

// TypeName returns the learner-facing name of a value's type.
func TypeName(v cty.Value) string {
	ty := v.Type()
	switch {
	case ty == cty.Number:
		if v.IsKnown() && !v.IsNull() && v.AsBigFloat().IsInt() {
			return "int"
		}
		return "float"
	case ty == cty.Bool:
		return "bool"
	case ty == cty.String:
		return "str"
	case ty.IsTupleType() || ty.IsListType():
		return "list"
	}
	return ty.FriendlyName()
}
