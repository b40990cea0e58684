package rewrite

import "strings"

var plainReplacer = strings.NewReplacer(
	"—", ", ",
	";", ", and",
	":", " -",
	"**", "",
	"##", "",
)

// Sanitize strips formatting the model tends to add: em-dashes, semicolons,
// colons, bold and heading markers. It works per chunk, so a marker split
// across two chunks survives.
func Sanitize(chunk string) string {
	return plainReplacer.Replace(chunk)
}
