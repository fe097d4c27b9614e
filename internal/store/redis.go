package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sonicbrief/api/internal/model"
)

// Retention for brief records and their renders/segments. Loop assets are
// kept indefinitely.
const briefTTL = 7 * 24 * time.Hour

// RedisStore is the durable Store implementation. Records are stored as
// JSON values keyed per entity, with a per-mood index set for loops.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redis: redisClient}
}

func briefKey(id string) string          { return fmt.Sprintf("brief:%s", id) }
func rendersKey(briefID string) string   { return fmt.Sprintf("renders:%s", briefID) }
func segmentsKey(briefID string) string  { return fmt.Sprintf("segments:%s", briefID) }
func loopKey(hash string) string         { return fmt.Sprintf("loop:%s", hash) }
func loopMoodKey(mood model.Mood) string { return fmt.Sprintf("loops:mood:%s", mood) }

func (s *RedisStore) CreateBrief(ctx context.Context, brief *model.Brief) error {
	return s.setJSON(ctx, briefKey(brief.ID), brief, briefTTL)
}

func (s *RedisStore) GetBrief(ctx context.Context, id string) (*model.Brief, error) {
	data, err := s.redis.Get(ctx, briefKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var brief model.Brief
	if err := json.Unmarshal(data, &brief); err != nil {
		return nil, err
	}
	return &brief, nil
}

func (s *RedisStore) UpdateBrief(ctx context.Context, brief *model.Brief) error {
	return s.setJSON(ctx, briefKey(brief.ID), brief, briefTTL)
}

func (s *RedisStore) AppendRender(ctx context.Context, render *model.Render) error {
	data, err := json.Marshal(render)
	if err != nil {
		return err
	}
	key := rendersKey(render.BriefID)
	if err := s.redis.RPush(ctx, key, data).Err(); err != nil {
		return err
	}
	return s.redis.Expire(ctx, key, briefTTL).Err()
}

func (s *RedisStore) ListRenders(ctx context.Context, briefID string) ([]model.Render, error) {
	items, err := s.redis.LRange(ctx, rendersKey(briefID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	renders := make([]model.Render, 0, len(items))
	for _, item := range items {
		var render model.Render
		if err := json.Unmarshal([]byte(item), &render); err != nil {
			return nil, err
		}
		renders = append(renders, render)
	}
	return renders, nil
}

func (s *RedisStore) PutSegments(ctx context.Context, briefID string, segments []model.Segment) error {
	return s.setJSON(ctx, segmentsKey(briefID), segments, briefTTL)
}

func (s *RedisStore) ListSegments(ctx context.Context, briefID string) ([]model.Segment, error) {
	data, err := s.redis.Get(ctx, segmentsKey(briefID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var segments []model.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (s *RedisStore) PutLoop(ctx context.Context, loop *model.LoopAsset) error {
	if err := s.setJSON(ctx, loopKey(loop.ContentHash), loop, 0); err != nil {
		return err
	}
	for _, mood := range loop.Moods {
		if err := s.redis.SAdd(ctx, loopMoodKey(mood), loop.ContentHash).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) GetLoop(ctx context.Context, contentHash string) (*model.LoopAsset, error) {
	data, err := s.redis.Get(ctx, loopKey(contentHash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var loop model.LoopAsset
	if err := json.Unmarshal(data, &loop); err != nil {
		return nil, err
	}
	return &loop, nil
}

func (s *RedisStore) ListLoopsByMood(ctx context.Context, mood model.Mood) ([]model.LoopAsset, error) {
	hashes, err := s.redis.SMembers(ctx, loopMoodKey(mood)).Result()
	if err != nil {
		return nil, err
	}

	loops := make([]model.LoopAsset, 0, len(hashes))
	for _, hash := range hashes {
		loop, err := s.GetLoop(ctx, hash)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		loops = append(loops, *loop)
	}
	return loops, nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, ttl).Err()
}
