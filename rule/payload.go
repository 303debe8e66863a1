package rule

import (
	"fmt"

	"github.com/goliatone/go-uses/internal/hydrate"
)

// rulePayload mirrors the JSON-shaped rule definition authors write.
type rulePayload struct {
	ID     string            `json:"id"`
	Test   *conditionPayload `json:"test,omitempty"`
	Issuer *conditionPayload `json:"issuer,omitempty"`
	Use    []any             `json:"use,omitempty"`
}

type conditionPayload struct {
	Prefix  string             `json:"prefix,omitempty"`
	Pattern string             `json:"pattern,omitempty"`
	Expr    string             `json:"expr,omitempty"`
	Not     *conditionPayload  `json:"not,omitempty"`
	All     []conditionPayload `json:"all,omitempty"`
	Any     []conditionPayload `json:"any,omitempty"`
}

// PayloadOption configures payload hydration.
type PayloadOption func(*payloadConfig)

type payloadConfig struct {
	evaluator Evaluator
}

// PayloadWithEvaluator supplies the evaluator backing "expr" conditions.
func PayloadWithEvaluator(evaluator Evaluator) PayloadOption {
	return func(cfg *payloadConfig) {
		cfg.evaluator = evaluator
	}
}

// FromPayload hydrates a rule authored as a JSON-shaped payload, e.g.
//
//	{"id": "styles", "test": {"pattern": "\\.scss$"}, "use": ["sass-loader"]}
//
// Conditions may nest through "not", "all", and "any"; "expr" conditions
// require an evaluator supplied via PayloadWithEvaluator.
func FromPayload(payload map[string]any, opts ...PayloadOption) (Rule, error) {
	cfg := payloadConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	id, _ := payload["id"].(string)
	decoder := hydrate.NewDecoder[rulePayload](hydrate.WithUseNumber[rulePayload]())
	decoded, err := decoder.Decode(hydrate.Context{RuleID: id}, payload)
	if err != nil {
		return Rule{}, err
	}

	r := Rule{ID: decoded.ID}
	if len(decoded.Use) > 0 {
		r.Use = decoded.Use
	}
	if decoded.Test != nil {
		condition, err := buildCondition(*decoded.Test, cfg)
		if err != nil {
			return Rule{}, fmt.Errorf("rule: test condition for rule %q: %w", decoded.ID, err)
		}
		r.Test = condition
	}
	if decoded.Issuer != nil {
		condition, err := buildCondition(*decoded.Issuer, cfg)
		if err != nil {
			return Rule{}, fmt.Errorf("rule: issuer condition for rule %q: %w", decoded.ID, err)
		}
		r.Issuer = condition
	}
	return r, nil
}

func buildCondition(payload conditionPayload, cfg payloadConfig) (Condition, error) {
	switch {
	case payload.Not != nil:
		inner, err := buildCondition(*payload.Not, cfg)
		if err != nil {
			return nil, err
		}
		return Not{Condition: inner}, nil
	case len(payload.All) > 0:
		members := make(AllOf, 0, len(payload.All))
		for _, member := range payload.All {
			condition, err := buildCondition(member, cfg)
			if err != nil {
				return nil, err
			}
			members = append(members, condition)
		}
		return members, nil
	case len(payload.Any) > 0:
		members := make(AnyOf, 0, len(payload.Any))
		for _, member := range payload.Any {
			condition, err := buildCondition(member, cfg)
			if err != nil {
				return nil, err
			}
			members = append(members, condition)
		}
		return members, nil
	case payload.Pattern != "":
		return NewPattern(payload.Pattern)
	case payload.Prefix != "":
		return Prefix(payload.Prefix), nil
	case payload.Expr != "":
		if cfg.evaluator == nil {
			return nil, ErrNoEvaluator
		}
		return Expression{Evaluator: cfg.evaluator, Expr: payload.Expr}, nil
	default:
		return nil, fmt.Errorf("rule: condition payload declares no matcher")
	}
}
