package tags

import (
	"reflect"
	"testing"

	"photofolio/pkg/models"
)

func gallery(slug string, tags []string, photos ...models.Photo) models.Gallery {
	return models.Gallery{Slug: slug, Title: slug, Tags: tags, Photos: photos}
}

func TestBuildCounts(t *testing.T) {
	galleries := []models.Gallery{
		gallery("alps", []string{"Hiking", "Travel"},
			models.Photo{Path: "a", Tags: []string{"hiking"}},
			models.Photo{Path: "b", Tags: []string{"Travel"}},
		),
		gallery("city", []string{"travel"}),
	}
	posts := []models.BlogPost{
		{Slug: "trip", Tags: []string{"Travel"}},
	}

	tags := Build(galleries, posts)

	byName := make(map[string]models.Tag)
	for _, tag := range tags {
		byName[tag.Name] = tag
	}

	travel := byName["travel"]
	if travel.Galleries != 2 || travel.Photos != 1 || travel.Posts != 1 {
		t.Errorf("travel = %+v, want galleries 2 photos 1 posts 1", travel)
	}
	if travel.Label != "Travel" {
		t.Errorf("Label = %q, first casing seen should win", travel.Label)
	}
	hiking := byName["hiking"]
	if hiking.Galleries != 1 || hiking.Photos != 1 {
		t.Errorf("hiking = %+v", hiking)
	}

	// travel totals 4, hiking 2; descending order.
	if tags[0].Name != "travel" {
		t.Errorf("tags[0] = %q, want the most used tag first", tags[0].Name)
	}
}

func TestBuildSkipsPrivateAndDrafts(t *testing.T) {
	galleries := []models.Gallery{
		{Slug: "secret", Private: true, Tags: []string{"hidden-stuff"}},
	}
	posts := []models.BlogPost{
		{Slug: "wip", Draft: true, Tags: []string{"hidden-stuff"}},
	}

	if tags := Build(galleries, posts); len(tags) != 0 {
		t.Errorf("private/draft content must not contribute tags: %+v", tags)
	}
}

func TestBuildSkipsHiddenPhotoTags(t *testing.T) {
	galleries := []models.Gallery{
		gallery("g", nil,
			models.Photo{Path: "visible", Tags: []string{"street"}},
			models.Photo{Path: "hidden", Hidden: true, Tags: []string{"street"}},
		),
	}

	tags := Build(galleries, nil)
	if len(tags) != 1 || tags[0].Photos != 1 {
		t.Errorf("tags = %+v, hidden photo should not count", tags)
	}
}

func TestBuildDedupesWithinOneEntity(t *testing.T) {
	galleries := []models.Gallery{
		gallery("g", []string{"Travel", "travel", " TRAVEL "}),
	}

	tags := Build(galleries, nil)
	if len(tags) != 1 || tags[0].Galleries != 1 {
		t.Errorf("tags = %+v, duplicates within one gallery count once", tags)
	}
}

func TestPhotosWithTag(t *testing.T) {
	galleries := []models.Gallery{
		gallery("open", nil,
			models.Photo{Path: "p1", Tags: []string{"Street"}},
			models.Photo{Path: "p2", Hidden: true, Tags: []string{"street"}},
		),
		{Slug: "locked", Private: true, Photos: []models.Photo{
			{Path: "p3", Tags: []string{"street"}},
		}},
	}

	photos := PhotosWithTag(galleries, "street")
	if len(photos) != 1 || photos[0].Path != "p1" {
		t.Errorf("photos = %+v, want only the visible public photo", photos)
	}
}

func TestGalleriesWithTag(t *testing.T) {
	galleries := []models.Gallery{
		gallery("direct", []string{"japan"}),
		gallery("viaPhoto", nil, models.Photo{Path: "p", Tags: []string{"Japan"}}),
		gallery("unrelated", []string{"alps"}),
	}

	got := GalleriesWithTag(galleries, "japan")
	if len(got) != 2 {
		t.Fatalf("got %d galleries, want 2", len(got))
	}
	if got[0].Slug != "direct" || got[1].Slug != "viaPhoto" {
		t.Errorf("slugs = %q, %q", got[0].Slug, got[1].Slug)
	}
}

func TestGalleriesInCategory(t *testing.T) {
	galleries := []models.Gallery{
		{Slug: "a", Category: "travel"},
		{Slug: "b", Category: "travel.japan"},
		{Slug: "c", Category: "travelogue"},
		{Slug: "d", Category: ""},
	}

	got := GalleriesInCategory(galleries, "travel")
	if len(got) != 2 {
		t.Fatalf("got %d galleries, want exact match plus descendants only", len(got))
	}
	if got[0].Slug != "a" || got[1].Slug != "b" {
		t.Errorf("slugs = %q, %q", got[0].Slug, got[1].Slug)
	}
}

func TestCategoriesIncludeAncestors(t *testing.T) {
	galleries := []models.Gallery{
		{Slug: "a", Category: "travel.japan.tokyo"},
		{Slug: "b", Category: "nature"},
	}

	got := Categories(galleries)
	want := []string{"nature", "travel", "travel.japan", "travel.japan.tokyo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}
