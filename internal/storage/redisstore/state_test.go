package redisstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/cory-johannsen/vestige/internal/storage/redisstore"
	"github.com/cory-johannsen/vestige/internal/testutil"
)

type StateStoreTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	store *redisstore.StateStore
}

func (s *StateStoreTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.store = redisstore.NewStateStore(client, time.Hour)
}

func (s *StateStoreTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestStateStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StateStoreTestSuite))
}

func (s *StateStoreTestSuite) TestSet() {
	ctx := context.Background()
	s.mock.ExpectSet("creator:state-Mara", `{"step":"ties"}`, time.Hour).SetVal("OK")

	err := s.store.Set(ctx, "creator", "state-Mara", []byte(`{"step":"ties"}`))
	s.NoError(err)

	s.mock.ExpectSet("creator:state-Mara", "{}", time.Hour).SetErr(errors.New("connection refused"))
	err = s.store.Set(ctx, "creator", "state-Mara", []byte("{}"))
	s.ErrorContains(err, "setting creator:state-Mara")
}

func (s *StateStoreTestSuite) TestGet() {
	ctx := context.Background()
	s.mock.ExpectGet("creator:state-Mara").SetVal(`{"step":"ties"}`)

	data, found, err := s.store.Get(ctx, "creator", "state-Mara")
	s.NoError(err)
	s.True(found)
	s.Equal(`{"step":"ties"}`, string(data))
}

func (s *StateStoreTestSuite) TestGet_Missing() {
	s.mock.ExpectGet("creator:state-Nobody").RedisNil()

	data, found, err := s.store.Get(context.Background(), "creator", "state-Nobody")
	s.NoError(err)
	s.False(found)
	s.Nil(data)
}

func (s *StateStoreTestSuite) TestGet_Error() {
	s.mock.ExpectGet("creator:state-Mara").SetErr(errors.New("timeout"))

	_, found, err := s.store.Get(context.Background(), "creator", "state-Mara")
	s.Error(err)
	s.False(found)
}

func TestStateStore_Integration(t *testing.T) {
	client := testutil.NewRedisContainer(t)
	store := redisstore.NewStateStore(client, time.Minute)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "ns", "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "ns", "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "ns", "k", []byte("v2")))

	data, found, err := store.Get(ctx, "ns", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", string(data))

	ttl, err := client.TTL(ctx, "ns:k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
