package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/internal/store"
	"github.com/Youseb010/mada-server/pkg/ident"
)

// ErrNotFound is returned when a referenced video id does not exist.
var ErrNotFound = errors.New("video not found")

// ErrEmptyField is returned when a comment is missing its author or text.
var ErrEmptyField = errors.New("author and text are required")

// CatalogService implements the catalog operations. Every operation runs as
// a single transaction against the whole document via store.View/Update.
type CatalogService struct {
	store *store.Store
	cache *CacheService
}

func NewCatalogService(st *store.Store, cache *CacheService) *CatalogService {
	return &CatalogService{store: st, cache: cache}
}

// Snapshot returns the full catalog (channels + videos) for client startup.
func (s *CatalogService) Snapshot(ctx context.Context) (*model.InitResponse, error) {
	var resp model.InitResponse
	err := s.store.View(func(c *model.Catalog) error {
		resp.Channels = c.Channels
		resp.Videos = c.Videos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateChannel appends a new channel. A missing name is stored as "" —
// channels are accepted as-is, matching the permissive creation contract.
func (s *CatalogService) CreateChannel(ctx context.Context, req model.CreateChannelRequest) (*model.Channel, error) {
	ch := model.Channel{
		ID:          ident.New(),
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
	}
	err := s.store.Update(func(c *model.Catalog) error {
		c.Channels = append(c.Channels, ch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// CreateVideo prepends a new video so listings stay most-recent-first.
// Counters start at zero, comments start empty, publishedAt is set once.
func (s *CatalogService) CreateVideo(ctx context.Context, req model.CreateVideoRequest) (*model.Video, error) {
	title := req.Title
	if title == "" {
		title = model.UntitledPlaceholder
	}
	v := model.Video{
		ID:                 ident.New(),
		CloudinaryPublicID: req.CloudinaryPublicID,
		VideoURL:           req.VideoURL,
		Thumbnail:          req.Thumbnail,
		Title:              title,
		Description:        req.Description,
		ChannelID:          req.ChannelID,
		Duration:           req.Duration,
		Comments:           []model.Comment{},
		PublishedAt:        time.Now().UTC(),
	}
	err := s.store.Update(func(c *model.Catalog) error {
		c.Videos = append([]model.Video{v}, c.Videos...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVideo returns a single video by id, cache-aside when Redis is wired.
func (s *CatalogService) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	if cached, err := s.cache.GetVideo(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	var found *model.Video
	err := s.store.View(func(c *model.Catalog) error {
		v := findVideo(c, id)
		if v == nil {
			return ErrNotFound
		}
		vc := *v
		found = &vc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.SetVideo(ctx, id, found)
	return found, nil
}

// RecordView increments the view counter and returns the new count.
func (s *CatalogService) RecordView(ctx context.Context, id string) (int, error) {
	return s.incrCounter(ctx, id, func(v *model.Video) *int { return &v.Views })
}

// RecordLike increments the like counter and returns the new count.
func (s *CatalogService) RecordLike(ctx context.Context, id string) (int, error) {
	return s.incrCounter(ctx, id, func(v *model.Video) *int { return &v.Likes })
}

// RecordDislike increments the dislike counter and returns the new count.
func (s *CatalogService) RecordDislike(ctx context.Context, id string) (int, error) {
	return s.incrCounter(ctx, id, func(v *model.Video) *int { return &v.Dislikes })
}

// AddComment appends a comment to a video. Empty author or text is rejected
// before any state is touched.
func (s *CatalogService) AddComment(ctx context.Context, videoID string, req model.CommentRequest) (*model.Comment, error) {
	if req.Author == "" || req.Text == "" {
		return nil, ErrEmptyField
	}
	comment := model.Comment{
		ID:     ident.New(),
		Author: req.Author,
		Text:   req.Text,
		Date:   time.Now().UTC(),
	}
	err := s.store.Update(func(c *model.Catalog) error {
		v := findVideo(c, videoID)
		if v == nil {
			return ErrNotFound
		}
		v.Comments = append(v.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateVideo(ctx, videoID)
	return &comment, nil
}

// Search returns all videos when the query is empty, otherwise the videos
// whose title or description contains the query, case-insensitively.
// Listing order (most recent first) is preserved.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Video, error) {
	q := strings.ToLower(query)
	results := []model.Video{}
	err := s.store.View(func(c *model.Catalog) error {
		if q == "" {
			results = append(results, c.Videos...)
			return nil
		}
		for _, v := range c.Videos {
			if strings.Contains(strings.ToLower(v.Title), q) ||
				strings.Contains(strings.ToLower(v.Description), q) {
				results = append(results, v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteVideo removes a video if present. Deleting a nonexistent id is a
// silent no-op, not an error.
func (s *CatalogService) DeleteVideo(ctx context.Context, id string) error {
	err := s.store.Update(func(c *model.Catalog) error {
		kept := c.Videos[:0]
		for _, v := range c.Videos {
			if v.ID != id {
				kept = append(kept, v)
			}
		}
		c.Videos = kept
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.InvalidateVideo(ctx, id)
	return nil
}

func (s *CatalogService) incrCounter(ctx context.Context, id string, counter func(*model.Video) *int) (int, error) {
	var updated int
	err := s.store.Update(func(c *model.Catalog) error {
		v := findVideo(c, id)
		if v == nil {
			return ErrNotFound
		}
		n := counter(v)
		*n++
		updated = *n
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.cache.InvalidateVideo(ctx, id)
	return updated, nil
}

func findVideo(c *model.Catalog, id string) *model.Video {
	for i := range c.Videos {
		if c.Videos[i].ID == id {
			return &c.Videos[i]
		}
	}
	return nil
}
