package service

import (
	"context"

	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/internal/store"
)

// StatsService computes aggregate catalog statistics.
type StatsService struct {
	store *store.Store
}

func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

// GetStats tallies totals across the whole catalog under shared access.
func (s *StatsService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var resp model.StatsResponse
	err := s.store.View(func(c *model.Catalog) error {
		resp.TotalChannels = len(c.Channels)
		resp.TotalVideos = len(c.Videos)
		for _, v := range c.Videos {
			resp.TotalComments += len(v.Comments)
			resp.TotalViews += v.Views
			resp.TotalLikes += v.Likes
			resp.TotalDislikes += v.Dislikes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
