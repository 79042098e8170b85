//go:build darwin

package internal

import (
	"os"
	"os/exec"
	"strings"
)

// detectSystemLocale returns the system locale string on macOS.
// Environment variables win over the AppleLocale preference so a terminal
// override is respected.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_ALL", "LC_MONETARY", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}

	// AppleLocale is already in the "pt_BR" form
	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
