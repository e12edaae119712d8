package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis"
	"github.com/goccy/go-json"

	"github.com/xanderstrike/traktkit/lib/common"
)

const (
	ratingsFormat  = "traktkit:ratings:%s"
	journalTimeout = 75 * 24 * time.Hour
)

// RedisStore is a storage engine that writes to redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient creates a new redis client object
func NewRedisClient(addr string, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisClientWithUrl creates a new redis client object
func NewRedisClientWithUrl(url string) (*redis.Client, error) {
	option, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	client := redis.NewClient(option)
	if _, err = client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisStore creates new store
func NewRedisStore(client *redis.Client) RedisStore {
	return RedisStore{
		client: client,
	}
}

// Ping will check if the connection works right
func (s RedisStore) Ping(ctx context.Context) error {
	_, err := s.client.WithContext(ctx).Ping().Result()
	return err
}

func ratingsKey(username string) string {
	return fmt.Sprintf(ratingsFormat, strings.ToLower(username))
}

// WriteRatingsEntry pushes an entry on the user's journal list
func (s RedisStore) WriteRatingsEntry(entry common.RatingsEntry) error {
	entry.Username = strings.ToLower(entry.Username)
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := ratingsKey(entry.Username)
	pipe := s.client.TxPipeline()
	pipe.LPush(key, b)
	pipe.LTrim(key, 0, maxEntries-1)
	pipe.Expire(key, journalTimeout)
	_, err = pipe.Exec()
	return err
}

// GetRatingsEntries will load the journal of a user, newest first
func (s RedisStore) GetRatingsEntries(username string) ([]common.RatingsEntry, error) {
	data, err := s.client.LRange(ratingsKey(username), 0, maxEntries-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]common.RatingsEntry, 0, len(data))
	for _, raw := range data {
		var entry common.RatingsEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("corrupt journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return newestFirst(entries), nil
}
