package textutil

import "strings"

// Path separators, colons, and asterisks become dashes so the name keeps
// its shape; quoting and redirection characters are dropped outright.
var unsafeFileChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a name safe to use as an output file basename.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(unsafeFileChars.Replace(name))
}
