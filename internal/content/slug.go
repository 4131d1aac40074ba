package content

import (
	"path"
	"strings"
	"unicode"
)

// Slugify lowercases s and reduces it to alphanumerics separated by single
// dashes. Used for tag URLs and for sanitizing filename-derived slugs.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// slugForFile maps a content-relative markdown path to its pretty-URL page
// slug: "posts/hello-world.md" -> "posts/hello-world/", "index.md" -> "",
// "about.md" -> "about/". Directory index files collapse onto the directory.
func slugForFile(rel string) string {
	rel = path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	dir, file := path.Split(rel)
	name := strings.TrimSuffix(file, path.Ext(file))

	segments := []string{}
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segments = append(segments, Slugify(seg))
	}
	if name != "index" && name != "_index" {
		segments = append(segments, Slugify(name))
	}
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, "/") + "/"
}

// titleFromFilename derives a human title from a content filename:
// "idempotent-consumers.md" -> "Idempotent consumers".
func titleFromFilename(rel string) string {
	base := path.Base(strings.ReplaceAll(rel, "\\", "/"))
	name := strings.TrimSuffix(base, path.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Untitled"
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
