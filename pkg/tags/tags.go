// Package tags aggregates tag usage across galleries and posts and
// provides the tag and category filtering helpers.
package tags

import (
	"sort"
	"strings"

	"photofolio/pkg/models"
	"photofolio/pkg/scanner"
)

// Build makes a single pass over all galleries and posts and produces
// aggregate tags. Private galleries and draft posts are skipped entirely;
// hidden photos contribute no photo-level tags but do not remove their
// gallery from the pass. Result ordering: descending by total count,
// ties stable in insertion order.
func Build(galleries []models.Gallery, posts []models.BlogPost) []models.Tag {
	byName := make(map[string]*models.Tag)
	var order []string

	touch := func(raw string) *models.Tag {
		name := scanner.NormalizeTag(raw)
		if name == "" {
			return nil
		}
		tag, ok := byName[name]
		if !ok {
			tag = &models.Tag{Name: name, Label: strings.TrimSpace(raw)}
			byName[name] = tag
			order = append(order, name)
		}
		return tag
	}

	for _, gallery := range galleries {
		if gallery.Private {
			continue
		}
		for _, raw := range dedupe(gallery.Tags) {
			if tag := touch(raw); tag != nil {
				tag.Galleries++
			}
		}
		for _, photo := range gallery.Photos {
			if photo.Hidden {
				continue
			}
			for _, raw := range dedupe(photo.Tags) {
				if tag := touch(raw); tag != nil {
					tag.Photos++
				}
			}
		}
	}

	for _, post := range posts {
		if post.Draft {
			continue
		}
		for _, raw := range dedupe(post.Tags) {
			if tag := touch(raw); tag != nil {
				tag.Posts++
			}
		}
	}

	out := make([]models.Tag, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return total(out[i]) > total(out[j])
	})
	return out
}

func total(t models.Tag) int {
	return t.Galleries + t.Photos + t.Posts
}

// dedupe drops repeated tags (by normalized key) keeping first casing.
func dedupe(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, tag := range raw {
		key := scanner.NormalizeTag(tag)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

func hasTag(tags []string, name string) bool {
	for _, tag := range tags {
		if scanner.NormalizeTag(tag) == name {
			return true
		}
	}
	return false
}

// PhotosWithTag returns all photos carrying the tag, excluding hidden
// photos and photos inside private galleries.
func PhotosWithTag(galleries []models.Gallery, tag string) []models.Photo {
	name := scanner.NormalizeTag(tag)
	var out []models.Photo
	for _, gallery := range galleries {
		if gallery.Private {
			continue
		}
		for _, photo := range gallery.Photos {
			if photo.Hidden {
				continue
			}
			if hasTag(photo.Tags, name) {
				out = append(out, photo)
			}
		}
	}
	return out
}

// GalleriesWithTag returns galleries that carry the tag at gallery level
// or on any non-hidden photo. Private galleries are excluded.
func GalleriesWithTag(galleries []models.Gallery, tag string) []models.Gallery {
	name := scanner.NormalizeTag(tag)
	var out []models.Gallery
	for _, gallery := range galleries {
		if gallery.Private {
			continue
		}
		if hasTag(gallery.Tags, name) {
			out = append(out, gallery)
			continue
		}
		for _, photo := range gallery.Photos {
			if !photo.Hidden && hasTag(photo.Tags, name) {
				out = append(out, gallery)
				break
			}
		}
	}
	return out
}

// GalleriesInCategory returns galleries whose category is the given
// dotted path or a descendant of it.
func GalleriesInCategory(galleries []models.Gallery, category string) []models.Gallery {
	var out []models.Gallery
	for _, gallery := range galleries {
		if gallery.Category == category ||
			strings.HasPrefix(gallery.Category, category+".") {
			out = append(out, gallery)
		}
	}
	return out
}

// Categories returns the distinct categories in use, including every
// ancestor prefix of each leaf category, sorted alphabetically.
func Categories(galleries []models.Gallery) []string {
	seen := make(map[string]bool)
	for _, gallery := range galleries {
		if gallery.Category == "" {
			continue
		}
		segments := strings.Split(gallery.Category, ".")
		for i := range segments {
			seen[strings.Join(segments[:i+1], ".")] = true
		}
	}

	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
