package scanner

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the optional metadata header block at the top of a
// markdown content file. Absence of a header is valid and yields
// all-default metadata.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Cover       string   `yaml:"cover"`
	Type        string   `yaml:"type"`
	Hidden      bool     `yaml:"hidden"`
}

const frontMatterFence = "---"

// SplitFrontMatter separates a "---"-fenced YAML header from the body.
// Content without a fence is returned whole as the body.
func SplitFrontMatter(content string) (header, body string) {
	trimmed := strings.TrimPrefix(content, "\ufeff")
	trimmed = strings.TrimLeft(trimmed, "\r\n")
	if !strings.HasPrefix(trimmed, frontMatterFence) {
		return "", content
	}

	rest := trimmed[len(frontMatterFence):]
	rest = strings.TrimPrefix(rest, "\r")
	if !strings.HasPrefix(rest, "\n") {
		return "", content
	}
	rest = rest[1:]

	for _, fence := range []string{"\n" + frontMatterFence + "\n", "\n" + frontMatterFence + "\r\n"} {
		if idx := strings.Index(rest, fence); idx >= 0 {
			return rest[:idx], rest[idx+len(fence):]
		}
	}
	if strings.HasSuffix(rest, "\n"+frontMatterFence) {
		return strings.TrimSuffix(rest, "\n"+frontMatterFence), ""
	}
	return "", content
}

// ParseFrontMatter extracts and parses the header block. A malformed
// header is treated as no metadata; the body is still returned.
func ParseFrontMatter(content string) (FrontMatter, string, error) {
	header, body := SplitFrontMatter(content)
	if header == "" {
		return FrontMatter{}, body, nil
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return FrontMatter{}, body, err
	}
	return fm, body, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"January 2, 2006",
	"2 January 2006",
}

// ParseDate parses the date formats accepted in front matter and sidecar
// files. The zero time is returned when nothing matches.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
