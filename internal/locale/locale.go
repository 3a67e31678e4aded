package locale

import (
	"os"
	"strings"
)

// Charmap returns the character map of the process locale, resolved with
// glibc precedence: LC_ALL overrides LC_CTYPE overrides LANG. Returns ""
// when the locale names no charmap (e.g. plain "C").
func Charmap() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		// Strip the @modifier, keep what follows the dot: en_US.UTF-8@euro
		if i := strings.IndexByte(val, '@'); i >= 0 {
			val = val[:i]
		}
		if i := strings.IndexByte(val, '.'); i >= 0 {
			return val[i+1:]
		}
		return ""
	}
	return ""
}

// IsUTF8 reports whether the system locale charmap is UTF-8.
func IsUTF8() bool {
	cm := strings.ToLower(strings.ReplaceAll(Charmap(), "-", ""))
	return cm == "utf8"
}
