// Package expr evaluates short learner-typed expressions such as
// `2 + 3 * 4` or `10 > 3 && 2 == 2`.
//
// Expressions are parsed with the HCL native syntax and evaluated with cty.
// Only literals and operators are allowed: variable references and function
// calls are rejected before evaluation, so nothing a learner types can reach
// outside the expression itself.
package expr
