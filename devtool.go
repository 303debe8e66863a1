package uses

import "strings"

// IsUseSourceMap reports whether devtool requests full-fidelity source maps:
// mapping is wanted and the request is either module-level or not "cheap".
func IsUseSourceMap(devtool string) bool {
	return strings.Contains(devtool, "source-map") &&
		(strings.Contains(devtool, "module") || !strings.Contains(devtool, "cheap"))
}

// IsUseSimpleSourceMap reports the degraded case: mapping is wanted but the
// request is "cheap" without being module-level. Mutually exclusive with
// IsUseSourceMap; both are false when mapping is not requested at all.
func IsUseSimpleSourceMap(devtool string) bool {
	return strings.Contains(devtool, "source-map") && !IsUseSourceMap(devtool)
}
