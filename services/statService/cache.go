package statService

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fairwayBook/models"

	"github.com/redis/go-redis/v9"
)

const statCacheTTL = 15 * time.Minute

// StatCache holds a denormalized, read-optimized copy of normalized stats
// for the UI. It is never authoritative for settlement; write failures are
// the caller's to log and ignore.
type StatCache struct {
	client *redis.Client
}

func NewStatCache(client *redis.Client) *StatCache {
	return &StatCache{client: client}
}

func statKey(tournamentID uint) string {
	return fmt.Sprintf("stats:%d", tournamentID)
}

// BackfillStats replaces the cached stat list for a tournament.
func (c *StatCache) BackfillStats(ctx context.Context, tournamentID uint, stats []models.PlayerRoundStat) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statKey(tournamentID), payload, statCacheTTL).Err()
}

// GetStats returns the cached stat list, or nil when the key is absent.
func (c *StatCache) GetStats(ctx context.Context, tournamentID uint) ([]models.PlayerRoundStat, error) {
	payload, err := c.client.Get(ctx, statKey(tournamentID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats []models.PlayerRoundStat
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
