//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"session-server/internal/auth/models"
	"session-server/internal/auth/store/session"
	"session-server/pkg/sentinel"
	"session-server/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := new(RedisStoreSuite)
	s.redis = containers.NewRedisContainer(t)
	suite.Run(t, s)
}

func (s *RedisStoreSuite) SetupTest() {
	s.store = session.NewRedisStore(s.redis.Client, "", time.Hour)
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	data := models.SessionData{UserID: 42, Username: "alice123"}

	s.Require().NoError(s.store.Save(ctx, "key-1", data))

	got, err := s.store.Get(ctx, "key-1")
	s.Require().NoError(err)
	s.Equal(data, *got)
}

func (s *RedisStoreSuite) TestKeysAreNamespaced() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "key-1", models.SessionData{UserID: 1}))

	exists, err := s.redis.Client.Exists(ctx, session.DefaultKeyPrefix+"key-1").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)
}

func (s *RedisStoreSuite) TestTTLIsSet() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "key-1", models.SessionData{UserID: 1}))

	ttl, err := s.redis.Client.TTL(ctx, session.DefaultKeyPrefix+"key-1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "absent")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDestroyIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "key-1", models.SessionData{UserID: 1}))

	s.Require().NoError(s.store.Destroy(ctx, "key-1"))
	s.Require().NoError(s.store.Destroy(ctx, "key-1"))

	_, err := s.store.Get(ctx, "key-1")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestTwoStoresShareRecords() {
	// Cookie and bearer resolution read from the same keyspace, so any store
	// instance built over the same client must see the same records.
	ctx := context.Background()
	other := session.NewRedisStore(s.redis.Client, "", time.Hour)

	s.Require().NoError(s.store.Save(ctx, "key-1", models.SessionData{UserID: 9, Username: "bob"}))

	got, err := other.Get(ctx, "key-1")
	s.Require().NoError(err)
	s.Equal(int64(9), got.UserID)
}
