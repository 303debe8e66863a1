package uses

import (
	"encoding/json"
	"fmt"
	"path"
	"runtime"
	"strings"
	"time"
)

// BuiltinPrefix marks loaders implemented natively by the build engine.
const BuiltinPrefix = "builtin:"

// SassLoaderName is the builtin loader whose options receive a resolved
// compiler executable path before serialization.
const SassLoaderName = BuiltinPrefix + "sass-loader"

// IsBuiltin reports whether loader carries the reserved builtin prefix.
func IsBuiltin(loader string) bool {
	return strings.HasPrefix(loader, BuiltinPrefix)
}

// builtinAugmenters patch a builtin loader's structured options in place
// before serialization, keyed by full loader name. Augmenting one loader must
// never touch another's options.
var builtinAugmenters = map[string]func(map[string]any){
	SassLoaderName: injectSassEmbeddedPath,
}

// materializeBuiltin produces the descriptor for a single builtin step. The
// prefix check guards direct callers; the partitioner only hands over
// prefixed entries, so tripping it means a programming error upstream.
func (c *Compiler) materializeBuiltin(spec LoaderSpec, trace *Trace) (UseDescriptor, error) {
	if !IsBuiltin(spec.Loader) {
		return UseDescriptor{}, fmt.Errorf("%w, got %q", ErrNotBuiltin, spec.Loader)
	}
	started := time.Now()

	options := spec.Options
	if augment := builtinAugmenters[spec.Loader]; augment != nil {
		payload, ok := options.(map[string]any)
		if !ok && options == nil {
			payload = map[string]any{}
			options = payload
		}
		if payload != nil {
			augment(payload)
		}
	}

	serialized, err := serializeBuiltinOptions(spec.Loader, options)
	c.logCompile(CompileLogEvent{
		Stage:    StageBuiltin,
		Loader:   spec.Loader,
		Duration: time.Since(started),
		Err:      err,
	})
	if err != nil {
		return UseDescriptor{}, err
	}

	c.emitBuiltinCompiled(spec.Loader, serialized)
	if trace != nil {
		trace.Descriptors = append(trace.Descriptors, Provenance{
			Kind:    StageBuiltin,
			Loaders: []string{spec.Loader},
			Options: serialized,
		})
	}
	return UseDescriptor{BuiltinLoader: spec.Loader, Options: serialized}, nil
}

// serializeBuiltinOptions renders options as JSON text. Absent options become
// the literal "{}" so the engine always receives parseable text.
func serializeBuiltinOptions(loader string, options any) (string, error) {
	if options == nil {
		return "{}", nil
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("uses: serialize options for builtin %q: %w", loader, err)
	}
	return string(encoded), nil
}

func injectSassEmbeddedPath(options map[string]any) {
	options["__exePath"] = sassEmbeddedPath(runtime.GOOS, runtime.GOARCH)
}

// sassEmbeddedPath mirrors the sass-embedded package layout:
// sass-embedded-<platform>-<arch>/dart-sass-embedded/dart-sass-embedded,
// with a .bat launcher on Windows.
func sassEmbeddedPath(goos, goarch string) string {
	platform := goos
	switch goos {
	case "windows":
		platform = "win32"
	case "darwin", "linux":
		// npm platform names already match
	}
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "ia32"
	}
	executable := "dart-sass-embedded"
	if goos == "windows" {
		executable += ".bat"
	}
	return path.Join("sass-embedded-"+platform+"-"+arch, "dart-sass-embedded", executable)
}
