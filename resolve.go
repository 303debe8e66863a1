package uses

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// parsedLoader splits a loader request into its path, query, and fragment
// portions. The fragment starts at the first '#', the query at the first '?'
// before it.
type parsedLoader struct {
	path     string
	query    string
	fragment string
}

func parseLoaderRequest(request string) parsedLoader {
	parsed := parsedLoader{path: request}
	if idx := strings.IndexByte(parsed.path, '#'); idx >= 0 {
		parsed.fragment = parsed.path[idx:]
		parsed.path = parsed.path[:idx]
	}
	if idx := strings.IndexByte(parsed.path, '?'); idx >= 0 {
		parsed.query = parsed.path[idx:]
		parsed.path = parsed.path[:idx]
	}
	return parsed
}

// resolvedUse is the outcome of resolving one spec: the identity string the
// segment is keyed on, and the registry ident minted or reused, if any.
type resolvedUse struct {
	identity string
	ident    string
}

// resolveIdentifier computes resolvedPath + query + fragment for spec.
//
// The query is derived from the options in strict precedence: absent or nil
// options keep whatever query the loader request itself embeds; string
// options pass through literally behind "?"; an explicit or embedded ident
// becomes "??ident"; anonymous structured options mint a fresh ident; any
// remaining primitive is JSON-encoded behind "?". Structured options are
// written to the registry exactly once, under the ident the query names.
func (c *Compiler) resolveIdentifier(spec LoaderSpec) (resolvedUse, error) {
	parsed := parseLoaderRequest(spec.Loader)
	resolvedPath, err := c.cfg.resolver.Resolve(c.cfg.context, parsed.path)
	if err != nil {
		return resolvedUse{}, wrapResolveError(spec.Loader, c.cfg.context, err)
	}

	use := resolvedUse{}
	options := spec.Options
	switch {
	case options == nil:
		// keep the parsed query and fragment untouched
	case isStringOptions(options):
		parsed.query = "?" + options.(string)
	case spec.Ident != "":
		use.ident = spec.Ident
		parsed.query = "??" + spec.Ident
		c.registerOptions(spec.Ident, options)
	case embeddedIdent(options) != "":
		ident := embeddedIdent(options)
		use.ident = ident
		parsed.query = "??" + ident
		c.registerOptions(ident, options)
	case structuredOptions(options):
		ident := c.cfg.idents.NewIdent()
		use.ident = ident
		parsed.query = "??" + ident
		c.registerOptions(ident, options)
	default:
		encoded, err := json.Marshal(options)
		if err != nil {
			return resolvedUse{}, fmt.Errorf("uses: encode options for loader %q: %w", spec.Loader, err)
		}
		parsed.query = "?" + string(encoded)
	}

	use.identity = resolvedPath + parsed.query + parsed.fragment
	return use, nil
}

// registerOptions writes options into the shared registry. Only structured
// payloads are recorded; string and primitive options already travel inside
// the identity string.
func (c *Compiler) registerOptions(ident string, options any) {
	if !structuredOptions(options) {
		return
	}
	if c.cfg.registry != nil {
		c.cfg.registry.Put(ident, options)
	}
	c.emitOptionsRegistered(ident)
}

func isStringOptions(options any) bool {
	_, ok := options.(string)
	return ok
}

// embeddedIdent extracts an ident carried inside a plain-object payload.
func embeddedIdent(options any) string {
	payload, ok := options.(map[string]any)
	if !ok {
		return ""
	}
	ident, _ := payload["ident"].(string)
	return ident
}

// structuredOptions reports whether options is a structured value rather
// than a string or primitive.
func structuredOptions(options any) bool {
	if options == nil {
		return false
	}
	switch reflect.ValueOf(options).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return false
	default:
		return true
	}
}
