package browser

import (
	"runtime"
	"testing"
)

func TestOpenSupportedPlatform(t *testing.T) {
	// Launching a real browser is not something a unit test can verify;
	// this only checks that the current platform has a mapping.
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
	default:
		t.Skipf("unsupported platform: %s", runtime.GOOS)
	}
}
