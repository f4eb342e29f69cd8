package index

import (
	"sort"
	"strings"

	"photofolio/pkg/models"
	"photofolio/pkg/scanner"
)

// defaultNavOrder sorts nodes without an explicit order after all
// ordered ones.
const defaultNavOrder = 1 << 30

// NavNode is one node of the navigation tree built from gallery
// summaries. Virtual nodes are synthesized for ancestor slug segments
// that have no gallery or parent-metadata entry of their own.
type NavNode struct {
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Order     *int       `json:"order,omitempty"`
	IsVirtual bool       `json:"isVirtual,omitempty"`
	Children  []*NavNode `json:"children,omitempty"`
}

// BuildNavigation nests gallery summaries by their slug segments.
// Private galleries are left out. Every level is sorted by explicit
// order, unset last, then by title.
func BuildNavigation(galleries []models.GallerySummary, parents []models.ParentMeta) []*NavNode {
	nodes := make(map[string]*NavNode)
	var roots []*NavNode

	// materialize inserts the full ancestor chain for slug before the
	// node itself, so parent linkage never depends on input order.
	var materialize func(slug string) *NavNode
	materialize = func(slug string) *NavNode {
		if node, ok := nodes[slug]; ok {
			return node
		}
		segments := strings.Split(slug, "/")
		node := &NavNode{
			Slug:      slug,
			Title:     scanner.TitleFromName(segments[len(segments)-1]),
			IsVirtual: true,
		}
		nodes[slug] = node
		if len(segments) == 1 {
			roots = append(roots, node)
		} else {
			parent := materialize(strings.Join(segments[:len(segments)-1], "/"))
			parent.Children = append(parent.Children, node)
		}
		return node
	}

	for _, gallery := range galleries {
		if gallery.Private || gallery.Slug == "" {
			continue
		}
		node := materialize(gallery.Slug)
		node.Title = gallery.Title
		node.Order = gallery.Order
		node.IsVirtual = false
	}

	// Parent-metadata entries carry display order and title for
	// container directories; they never displace a real gallery node.
	for _, parent := range parents {
		if parent.Slug == "" {
			continue
		}
		node := materialize(parent.Slug)
		if node.IsVirtual {
			node.Title = parent.Title
			node.Order = parent.Order
			node.IsVirtual = false
		}
	}

	sortNavLevel(roots)
	return roots
}

func sortNavLevel(nodes []*NavNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		oi, oj := navOrder(nodes[i]), navOrder(nodes[j])
		if oi != oj {
			return oi < oj
		}
		return scanner.NaturalLess(nodes[i].Title, nodes[j].Title)
	})
	for _, node := range nodes {
		sortNavLevel(node.Children)
	}
}

func navOrder(node *NavNode) int {
	if node.Order != nil {
		return *node.Order
	}
	return defaultNavOrder
}
