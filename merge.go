package uses

// MergeOptionLayers composes option payloads ordered from strongest to
// weakest, returning a new map that keeps explicit settings from stronger
// layers while filling missing keys from weaker ones. Inputs are never
// mutated.
func MergeOptionLayers(layers ...map[string]any) map[string]any {
	if len(layers) == 0 {
		return nil
	}
	merged := cloneOptionMap(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeOptionMaps(layers[i], merged)
	}
	return merged
}

func mergeOptionMaps(strong, weak map[string]any) map[string]any {
	if strong == nil {
		return cloneOptionMap(weak)
	}
	result := make(map[string]any, len(strong)+len(weak))
	for key, value := range weak {
		result[key] = cloneOptionValue(value)
	}
	for key, value := range strong {
		if existing, ok := result[key]; ok {
			result[key] = mergeOptionValue(value, existing)
			continue
		}
		result[key] = cloneOptionValue(value)
	}
	return result
}

func mergeOptionValue(strong, weak any) any {
	strongMap, strongOK := strong.(map[string]any)
	weakMap, weakOK := weak.(map[string]any)
	if strongOK && weakOK {
		return mergeOptionMaps(strongMap, weakMap)
	}
	if strong == nil {
		return cloneOptionValue(weak)
	}
	// slices and scalars: the stronger layer wins outright
	return cloneOptionValue(strong)
}

func cloneOptionValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneOptionMap(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, entry := range typed {
			clone[i] = cloneOptionValue(entry)
		}
		return clone
	default:
		return value
	}
}

func cloneOptionMap(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	clone := make(map[string]any, len(payload))
	for key, value := range payload {
		clone[key] = cloneOptionValue(value)
	}
	return clone
}
