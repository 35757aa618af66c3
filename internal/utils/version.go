package utils

import (
	"runtime/debug"
	"strings"
)

// version is injected with -ldflags "-X .../internal/utils.version=v1.2.3".
var version string

// GetVersion returns the injected version, else the module version from the
// build info, without a leading "v". Local builds report "(devel)".
func GetVersion() string {
	v := version
	if v == "" {
		v = "unknown"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		}
	}
	return strings.TrimPrefix(v, "v")
}
