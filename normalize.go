package uses

import "fmt"

// Normalize coerces a use value into an ordered list of LoaderSpec. A bare
// string s becomes LoaderSpec{Loader: s}; lists may mix strings and specs and
// keep their declaration order. Empty input yields an empty list.
func Normalize(use any) ([]LoaderSpec, error) {
	switch value := use.(type) {
	case nil:
		return nil, nil
	case string:
		return []LoaderSpec{{Loader: value}}, nil
	case LoaderSpec:
		return []LoaderSpec{value}, nil
	case *LoaderSpec:
		if value == nil {
			return nil, nil
		}
		return []LoaderSpec{*value}, nil
	case []string:
		specs := make([]LoaderSpec, 0, len(value))
		for _, loader := range value {
			specs = append(specs, LoaderSpec{Loader: loader})
		}
		return specs, nil
	case []LoaderSpec:
		return append([]LoaderSpec(nil), value...), nil
	case map[string]any:
		spec, err := specFromPayload(value)
		if err != nil {
			return nil, err
		}
		return []LoaderSpec{spec}, nil
	case []any:
		specs := make([]LoaderSpec, 0, len(value))
		for _, entry := range value {
			normalized, err := Normalize(entry)
			if err != nil {
				return nil, err
			}
			specs = append(specs, normalized...)
		}
		return specs, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidUse, use)
	}
}

// specFromPayload coerces a JSON-shaped use entry into a LoaderSpec.
func specFromPayload(payload map[string]any) (LoaderSpec, error) {
	loader, _ := payload["loader"].(string)
	if loader == "" {
		return LoaderSpec{}, fmt.Errorf("%w, payload is missing a loader", ErrInvalidUse)
	}
	ident, _ := payload["ident"].(string)
	return LoaderSpec{
		Loader:  loader,
		Options: payload["options"],
		Ident:   ident,
	}, nil
}
