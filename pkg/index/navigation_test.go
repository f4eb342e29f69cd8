package index

import (
	"testing"

	"photofolio/pkg/models"
)

func intPtr(v int) *int { return &v }

func findNode(t *testing.T, nodes []*NavNode, slug string) *NavNode {
	t.Helper()
	for _, node := range nodes {
		if node.Slug == slug {
			return node
		}
	}
	t.Fatalf("node %q not found among %d nodes", slug, len(nodes))
	return nil
}

func TestBuildNavigationNesting(t *testing.T) {
	galleries := []models.GallerySummary{
		{Slug: "japan/tokyo", Title: "Tokyo"},
		{Slug: "japan/osaka", Title: "Osaka"},
		{Slug: "alps", Title: "Alps"},
	}

	roots := BuildNavigation(galleries, nil)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}

	japan := findNode(t, roots, "japan")
	if !japan.IsVirtual {
		t.Error("japan has no gallery of its own, should be virtual")
	}
	if len(japan.Children) != 2 {
		t.Fatalf("japan has %d children, want 2", len(japan.Children))
	}
	findNode(t, japan.Children, "japan/tokyo")
	findNode(t, japan.Children, "japan/osaka")

	alps := findNode(t, roots, "alps")
	if alps.IsVirtual {
		t.Error("alps is a real gallery, not virtual")
	}
}

func TestBuildNavigationExcludesPrivate(t *testing.T) {
	galleries := []models.GallerySummary{
		{Slug: "open", Title: "Open"},
		{Slug: "secret", Title: "Secret", Private: true},
	}

	roots := BuildNavigation(galleries, nil)
	if len(roots) != 1 || roots[0].Slug != "open" {
		t.Errorf("roots = %+v, private galleries must be left out", roots)
	}
}

func TestBuildNavigationParentMetadataFillsVirtualOnly(t *testing.T) {
	galleries := []models.GallerySummary{
		{Slug: "japan/tokyo", Title: "Tokyo"},
		{Slug: "alps", Title: "Alps From Gallery", Order: intPtr(1)},
	}
	parents := []models.ParentMeta{
		{Slug: "japan", Title: "Japan Trips", Order: intPtr(2)},
		{Slug: "alps", Title: "Alps From Parent", Order: intPtr(9)},
	}

	roots := BuildNavigation(galleries, parents)

	japan := findNode(t, roots, "japan")
	if japan.IsVirtual {
		t.Error("parent metadata should promote the virtual node")
	}
	if japan.Title != "Japan Trips" {
		t.Errorf("japan Title = %q", japan.Title)
	}

	alps := findNode(t, roots, "alps")
	if alps.Title != "Alps From Gallery" {
		t.Errorf("a real gallery node must not be displaced, Title = %q", alps.Title)
	}
	if alps.Order == nil || *alps.Order != 1 {
		t.Errorf("alps Order = %v, want the gallery's own order", alps.Order)
	}
}

func TestBuildNavigationSortOrder(t *testing.T) {
	galleries := []models.GallerySummary{
		{Slug: "zebra", Title: "Zebra"},
		{Slug: "last", Title: "Last", Order: intPtr(10)},
		{Slug: "first", Title: "First", Order: intPtr(1)},
		{Slug: "apple", Title: "Apple"},
	}

	roots := BuildNavigation(galleries, nil)
	var slugs []string
	for _, node := range roots {
		slugs = append(slugs, node.Slug)
	}

	// Explicit orders first, then unordered by title.
	want := []string{"first", "last", "apple", "zebra"}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("order = %v, want %v", slugs, want)
		}
	}
}

func TestBuildNavigationDeepChain(t *testing.T) {
	galleries := []models.GallerySummary{
		{Slug: "a/b/c", Title: "Deep"},
	}

	roots := BuildNavigation(galleries, nil)
	a := findNode(t, roots, "a")
	if !a.IsVirtual || a.Title != "A" {
		t.Errorf("a = %+v, want a virtual node with a derived title", a)
	}
	b := findNode(t, a.Children, "a/b")
	if !b.IsVirtual {
		t.Error("a/b should be virtual")
	}
	c := findNode(t, b.Children, "a/b/c")
	if c.IsVirtual || c.Title != "Deep" {
		t.Errorf("c = %+v", c)
	}
}
