package rule

import (
	"regexp"
	"strings"
)

// Condition decides whether a rule applies to a candidate value.
type Condition interface {
	Match(ctx ModuleContext, value string) (bool, error)
}

// Prefix matches values sharing a literal prefix.
type Prefix string

// Match implements Condition.
func (p Prefix) Match(_ ModuleContext, value string) (bool, error) {
	return strings.HasPrefix(value, string(p)), nil
}

// Pattern matches values against a compiled regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a Pattern condition.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, wrapEvaluatorError("pattern", err)
	}
	return Pattern{re: re}, nil
}

// MustPattern is NewPattern for statically known expressions; it panics on a
// compile error.
func MustPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

// Match implements Condition.
func (p Pattern) Match(_ ModuleContext, value string) (bool, error) {
	if p.re == nil {
		return false, nil
	}
	return p.re.MatchString(value), nil
}

// Not inverts its wrapped condition.
type Not struct {
	Condition Condition
}

// Match implements Condition.
func (n Not) Match(ctx ModuleContext, value string) (bool, error) {
	if n.Condition == nil {
		return false, nil
	}
	ok, err := n.Condition.Match(ctx, value)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// AllOf matches when every member condition matches.
type AllOf []Condition

// Match implements Condition.
func (c AllOf) Match(ctx ModuleContext, value string) (bool, error) {
	for _, member := range c {
		if member == nil {
			continue
		}
		ok, err := member.Match(ctx, value)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// AnyOf matches when at least one member condition matches.
type AnyOf []Condition

// Match implements Condition.
func (c AnyOf) Match(ctx ModuleContext, value string) (bool, error) {
	for _, member := range c {
		if member == nil {
			continue
		}
		ok, err := member.Match(ctx, value)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Expression evaluates a configured expression against the module context and
// treats the result as a truthiness test.
type Expression struct {
	Evaluator Evaluator
	Expr      string
}

// Match implements Condition.
func (e Expression) Match(ctx ModuleContext, value string) (bool, error) {
	if e.Evaluator == nil {
		return false, ErrNoEvaluator
	}
	result, err := e.Evaluator.Evaluate(MatchContext{
		Resource:   ctx.Resource,
		Issuer:     ctx.Issuer,
		Value:      value,
		Attributes: ctx.Attributes,
	}, e.Expr)
	if err != nil {
		return false, err
	}
	return truthy(result), nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
