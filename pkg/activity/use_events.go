package activity

import (
	"strings"
	"time"
)

// UseEventInput describes the common fields for use-compilation lifecycle
// events.
type UseEventInput struct {
	ObjectID   string
	Channel    string
	Metadata   map[string]any
	Identifier string
	Loaders    []string
	Idents     []string
	Options    string
	OccurredAt time.Time
}

// BuildSegmentCompiledEvent constructs a normalized event for a composed
// segment descriptor.
func BuildSegmentCompiledEvent(input UseEventInput) Event {
	return buildUseEvent("use.segment.compiled", "use.segment", input)
}

// BuildBuiltinCompiledEvent constructs a normalized event for a builtin step
// descriptor.
func BuildBuiltinCompiledEvent(input UseEventInput) Event {
	return buildUseEvent("use.builtin.compiled", "use.builtin", input)
}

// BuildOptionsRegisteredEvent constructs a normalized event for an options
// registry write.
func BuildOptionsRegisteredEvent(input UseEventInput) Event {
	return buildUseEvent("options.registered", "options", input)
}

func buildUseEvent(verb, objectType string, input UseEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Identifier != "" {
		metadata = ensureMetadata(metadata)
		metadata["identifier"] = input.Identifier
	}
	if len(input.Loaders) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["loaders"] = append([]string{}, input.Loaders...)
	}
	if len(input.Idents) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["idents"] = append([]string{}, input.Idents...)
	}
	if input.Options != "" {
		metadata = ensureMetadata(metadata)
		metadata["options"] = input.Options
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Identifier)
	}
	if objectID == "" && len(input.Idents) > 0 {
		objectID = strings.TrimSpace(input.Idents[0])
	}
	if objectID == "" && len(input.Loaders) > 0 {
		objectID = strings.TrimSpace(input.Loaders[0])
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
