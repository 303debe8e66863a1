// Package rule matches module rules against resolved modules to decide which
// loader use chains apply to them.
package rule

// Rule associates match conditions with the use value handed to the
// descriptor compiler when the rule accepts a module.
type Rule struct {
	ID     string
	Test   Condition // matched against ModuleContext.Resource
	Issuer Condition // matched against ModuleContext.Issuer
	Use    any
}

// ModuleContext describes the module a rule set is matched against.
type ModuleContext struct {
	Resource   string
	Issuer     string
	Attributes map[string]any
}

// Matches reports whether every declared condition accepts ctx. A rule with
// no conditions matches everything.
func (r Rule) Matches(ctx ModuleContext) (bool, error) {
	if r.Test != nil {
		ok, err := r.Test.Match(ctx, ctx.Resource)
		if err != nil || !ok {
			return false, err
		}
	}
	if r.Issuer != nil {
		ok, err := r.Issuer.Match(ctx, ctx.Issuer)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Match returns the rules from set that accept ctx, in declaration order.
func Match(ctx ModuleContext, set []Rule) ([]Rule, error) {
	var matched []Rule
	for _, r := range set {
		ok, err := r.Matches(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return matched, nil
}
