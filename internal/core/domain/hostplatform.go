package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// HostPlatformName maps the machine running the build to one of the stock
// platform names. It is used to pick a sensible default aggregate when no
// platform is requested explicitly, so that a bare build invocation always
// at least builds for the host and exercises the toolchain check.
func HostPlatformName() (string, error) {
	return hostPlatformName(runtime.GOOS, runtime.GOARCH)
}

func hostPlatformName(goos, goarch string) (string, error) {
	switch goos {
	case "windows":
		if goarch == "386" {
			return "win32", nil
		}
		return "win64", nil
	case "linux":
		return "linux64", nil
	case "darwin":
		return "mac64", nil
	}
	err := zerr.Wrap(ErrHostPlatformUnsupported, "cannot map host to a stock platform")
	err = zerr.With(err, "os", goos)
	return "", zerr.With(err, "arch", goarch)
}
