package pi

import "runtime/debug"

// Version is set at build time:
//
//	go build -ldflags "-X github.com/vvka-141/pi-go/pkg/pi.Version=v1.2.3"
var Version = "dev"

const modulePath = "github.com/vvka-141/pi-go"

// resolveVersion returns the ldflags version, falling back to the module version
// recorded in the build info of the binary that imports this package.
func resolveVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath && dep.Version != "" {
			return dep.Version
		}
	}
	return "dev"
}

// UserAgent returns the client identifier in the form "pi-go/<version>".
func UserAgent() string {
	return LibraryName + "/" + resolveVersion()
}
