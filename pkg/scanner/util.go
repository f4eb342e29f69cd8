// Package scanner walks the storage tree and produces the typed content
// model: galleries with photos, blog posts, and static pages.
package scanner

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Content roots within the storage tree.
const (
	GalleriesRoot = "galleries"
	BlogRoot      = "blog"
	PagesRoot     = "pages"
)

// Sidecar file names looked up in every scanned directory.
const (
	GalleryMetaFile = "gallery.yml"
	PhotoMetaFile   = "photos.yml"
	PageMetaFile    = "page.yml"
)

// excerptLength is the target excerpt size in characters; truncation
// happens at the nearest word boundary.
const excerptLength = 160

// wordsPerMinute is the fixed reading rate for reading-time estimates.
const wordsPerMinute = 200

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
}

// IsImageFile reports whether name has a recognized image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// IsJPEG reports whether name is a JPEG-family file. Embedded metadata is
// read only for these.
func IsJPEG(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".jpg" || ext == ".jpeg"
}

// IsMarkdownFile reports whether name is a markdown file.
func IsMarkdownFile(name string) bool {
	return strings.ToLower(path.Ext(name)) == ".md"
}

// IsHTMLFile reports whether name is an HTML file.
func IsHTMLFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// Slugify converts a name to a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugFromPath slugifies each segment of a slash-separated path and joins
// them back with "/". Gallery identity is built this way from the path
// relative to the galleries root.
func SlugFromPath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if slug := Slugify(segment); slug != "" {
			out = append(out, slug)
		}
	}
	return strings.Join(out, "/")
}

// TitleFromName derives a display title from a file or directory name:
// extension stripped, separators turned into spaces, words capitalized.
func TitleFromName(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeTag produces the tag aggregation key: lowercase, trimmed,
// internal whitespace collapsed to hyphens.
func NormalizeTag(tag string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(tag)), "-")
}

var (
	reCodeBlock  = regexp.MustCompile("(?s)```.*?```")
	reInlineCode = regexp.MustCompile("`([^`]*)`")
	reImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	reEmphasis   = regexp.MustCompile(`(\*\*|__|\*|_|~~)`)
	reBlockquote = regexp.MustCompile(`(?m)^>\s?`)
	reHTMLTag    = regexp.MustCompile(`<[^>]+>`)
)

// StripMarkdown reduces a markdown body to plain text: code blocks and
// images removed, links kept as their text, heading/emphasis/quote
// markers dropped, whitespace collapsed.
func StripMarkdown(body string) string {
	body = reCodeBlock.ReplaceAllString(body, " ")
	body = reImage.ReplaceAllString(body, " ")
	body = reInlineCode.ReplaceAllString(body, "$1")
	body = reLink.ReplaceAllString(body, "$1")
	body = reHeading.ReplaceAllString(body, "")
	body = reBlockquote.ReplaceAllString(body, "")
	body = reEmphasis.ReplaceAllString(body, "")
	body = reHTMLTag.ReplaceAllString(body, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(body, " "))
}

// Excerpt derives a short plain-text summary from a markdown body,
// truncated at a word boundary near excerptLength characters.
func Excerpt(body string) string {
	text := StripMarkdown(body)
	if len(text) <= excerptLength {
		return text
	}
	cut := strings.LastIndex(text[:excerptLength+1], " ")
	if cut <= 0 {
		cut = excerptLength
	}
	return strings.TrimRight(text[:cut], " ,.;:!?") + "…"
}

// ReadingTime estimates minutes to read a body at wordsPerMinute, rounded
// up, minimum 1.
func ReadingTime(body string) int {
	words := len(strings.Fields(StripMarkdown(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NaturalLess compares strings treating digit runs as numbers, so
// "photo2" sorts before "photo10". All photo and image ordering uses it.
func NaturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}
		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			var num1, num2 string
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				num1 += string(s1[i])
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				num2 += string(s2[j])
				j++
			}
			n1, _ := strconv.Atoi(num1)
			n2, _ := strconv.Atoi(num2)
			if n1 != n2 {
				return n1 < n2
			}
		} else {
			if s1[i] != s2[j] {
				return s1[i] < s2[j]
			}
			i++
			j++
		}
	}
	return len(s1) < len(s2)
}
