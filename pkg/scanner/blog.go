package scanner

import (
	"context"
	"path"
	"sort"

	"go.uber.org/zap"

	"photofolio/pkg/models"
	"photofolio/pkg/storage"
)

// contentFilePriority is the search order for a post folder's content
// file; the first match wins.
var contentFilePriority = []string{"index.md", "post.md", "readme.md"}

// BlogScanner produces BlogPost entities from the posts root. A post is a
// folder with a markdown content file, or a bare markdown file.
type BlogScanner struct {
	store  storage.Storage
	logger *zap.Logger
}

// NewBlogScanner creates a blog scanner over the given storage.
func NewBlogScanner(store storage.Storage, logger *zap.Logger) *BlogScanner {
	return &BlogScanner{store: store, logger: logger}
}

// Scan lists the top-level entries under the posts root. Drafts are
// included; listing layers filter them.
func (s *BlogScanner) Scan(ctx context.Context) ([]models.BlogPost, error) {
	entries, err := s.store.List(ctx, BlogRoot)
	if err != nil {
		return nil, err
	}

	posts := []models.BlogPost{}
	for _, entry := range entries {
		var post *models.BlogPost
		if entry.IsDirectory {
			post, err = s.scanFolder(ctx, entry)
		} else if IsMarkdownFile(entry.Name) {
			post, err = s.scanFile(ctx, entry)
		} else {
			continue
		}
		if err != nil {
			return nil, err
		}
		if post != nil {
			posts = append(posts, *post)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// scanFolder searches a post folder (non-recursively) for the highest
// priority content file and collects sibling images. A folder without a
// content file is skipped, not an error.
func (s *BlogScanner) scanFolder(ctx context.Context, folder models.FileInfo) (*models.BlogPost, error) {
	entries, err := s.store.List(ctx, folder.Path)
	if err != nil {
		return nil, err
	}

	content := pickContentFile(entries)
	if content == nil {
		s.logger.Warn("post folder has no markdown content, skipping",
			zap.String("path", folder.Path))
		return nil, nil
	}

	var images []string
	for _, entry := range entries {
		if !entry.IsDirectory && IsImageFile(entry.Name) {
			images = append(images, entry.Path)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return NaturalLess(images[i], images[j])
	})

	return s.buildPost(ctx, *content, folder.Name, images)
}

func (s *BlogScanner) scanFile(ctx context.Context, file models.FileInfo) (*models.BlogPost, error) {
	return s.buildPost(ctx, file, file.Name, nil)
}

func (s *BlogScanner) buildPost(ctx context.Context, content models.FileInfo, name string, images []string) (*models.BlogPost, error) {
	text, err := s.store.GetText(ctx, content.Path)
	if err != nil {
		return nil, err
	}

	fm, body, err := ParseFrontMatter(text)
	if err != nil {
		s.logger.Warn("malformed front matter, using defaults",
			zap.String("path", content.Path),
			zap.Error(err))
	}

	post := &models.BlogPost{
		Title:       fm.Title,
		Excerpt:     fm.Description,
		ReadingTime: ReadingTime(body),
		Tags:        fm.Tags,
		Draft:       fm.Draft,
		Cover:       fm.Cover,
		Images:      images,
		Body:        body,
		Path:        content.Path,
		Date:        ParseDate(fm.Date),
	}

	if post.Title == "" {
		post.Title = TitleFromName(name)
	}
	// Slug from the title when one is given, else from the folder or
	// file name, through the same transform galleries use.
	if fm.Title != "" {
		post.Slug = Slugify(fm.Title)
	} else {
		post.Slug = Slugify(trimExt(name))
	}
	if post.Excerpt == "" {
		post.Excerpt = Excerpt(body)
	}
	if post.Date.IsZero() {
		post.Date = content.LastModified
	}
	if post.Cover == "" && len(images) > 0 {
		post.Cover = images[0]
	}

	return post, nil
}

func pickContentFile(entries []models.FileInfo) *models.FileInfo {
	byName := make(map[string]models.FileInfo, len(entries))
	var markdown []models.FileInfo
	for _, entry := range entries {
		if entry.IsDirectory {
			continue
		}
		byName[entry.Name] = entry
		if IsMarkdownFile(entry.Name) {
			markdown = append(markdown, entry)
		}
	}

	for _, name := range contentFilePriority {
		if entry, ok := byName[name]; ok {
			return &entry
		}
	}
	if len(markdown) > 0 {
		sort.Slice(markdown, func(i, j int) bool {
			return NaturalLess(markdown[i].Name, markdown[j].Name)
		})
		return &markdown[0]
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(path.Ext(name))]
}
