//go:build !windows && !darwin

package internal

import "os"

// detectSystemLocale returns the system locale string on Unix-like systems.
// For currency detection, priority is: LC_MONETARY (most specific), LC_ALL, LANG.
func detectSystemLocale() string {
	return localeFromEnv("LC_MONETARY", "LC_ALL", "LANG")
}

func localeFromEnv(vars ...string) string {
	for _, envVar := range vars {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
