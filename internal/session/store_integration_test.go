//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"schemereg/internal/session"
	"schemereg/pkg/platform/sentinel"
	"schemereg/pkg/testutil/containers"
)

// storeContract exercises behaviour every Store must share.
type storeContract struct {
	suite.Suite
	store session.Store
}

func (s *storeContract) TestRoundTrip() {
	ctx := context.Background()
	key := session.Key("round-trip")

	s.Require().NoError(s.store.Set(ctx, key, []byte(`{"version":3}`), time.Minute))
	data, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.JSONEq(`{"version":3}`, string(data))
}

func (s *storeContract) TestOverwriteIsLastWriteWins() {
	ctx := context.Background()
	key := session.Key("overwrite")

	s.Require().NoError(s.store.Set(ctx, key, []byte("first"), time.Minute))
	s.Require().NoError(s.store.Set(ctx, key, []byte("second"), time.Minute))
	data, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal("second", string(data))
}

func (s *storeContract) TestMissingAndDeleted() {
	ctx := context.Background()
	key := session.Key("deleted")

	_, err := s.store.Get(ctx, key)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Set(ctx, key, []byte("v"), time.Minute))
	s.Require().NoError(s.store.Delete(ctx, key))
	s.Require().NoError(s.store.Delete(ctx, key))
	_, err = s.store.Get(ctx, key)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *storeContract) TestExpired() {
	ctx := context.Background()
	key := session.Key("expired")

	s.Require().NoError(s.store.Set(ctx, key, []byte("v"), time.Second))
	time.Sleep(1500 * time.Millisecond)
	_, err := s.store.Get(ctx, key)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

type RedisStoreSuite struct {
	storeContract
	redis *containers.RedisContainer
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestReadRefreshesIdleExpiry() {
	ctx := context.Background()
	key := session.Key("idle")

	s.Require().NoError(s.store.Set(ctx, key, []byte("v"), 5*time.Second))
	_, err := s.store.Get(ctx, key)
	s.Require().NoError(err)

	ttl, err := s.redis.Client.TTL(ctx, key).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 5*time.Second)
}

type PostgresStoreSuite struct {
	storeContract
	pg *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	store := session.NewPostgres(s.pg.Pool, time.Minute)
	s.Require().NoError(store.EnsureSchema(context.Background()))
	s.store = store
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), `TRUNCATE sessions`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestPurgeExpired() {
	ctx := context.Background()
	store := s.store.(*session.PostgresStore)

	s.Require().NoError(store.Set(ctx, session.Key("old"), []byte("v"), time.Second))
	s.Require().NoError(store.Set(ctx, session.Key("live"), []byte("v"), time.Hour))
	time.Sleep(1500 * time.Millisecond)

	n, err := store.PurgeExpired(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
