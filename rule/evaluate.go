package rule

import "errors"

// ErrNoEvaluator reports an Expression condition used without a wired
// evaluator.
var ErrNoEvaluator = errors.New("rule: evaluator not configured")

// MatchContext carries the bindings exposed to condition expressions.
type MatchContext struct {
	Resource   string
	Issuer     string
	Value      string
	Attributes map[string]any
}

func (ctx MatchContext) withDefaultMaps() MatchContext {
	if ctx.Attributes == nil {
		ctx.Attributes = map[string]any{}
	}
	return ctx
}

func (ctx MatchContext) bindings() map[string]any {
	return map[string]any{
		"resource":   ctx.Resource,
		"issuer":     ctx.Issuer,
		"value":      ctx.Value,
		"attributes": ctx.Attributes,
	}
}

// Evaluator executes condition expressions against a match context.
type Evaluator interface {
	Evaluate(ctx MatchContext, expr string) (any, error)
	Compile(expr string) (CompiledCondition, error)
}

// CompiledCondition represents a reusable expression program.
type CompiledCondition interface {
	Evaluate(ctx MatchContext) (any, error)
}
