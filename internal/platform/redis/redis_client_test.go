package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/app/config"
)

func TestPing(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		require.NoError(t, Ping(context.Background(), rdb))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		assert.ErrorContains(t, Ping(context.Background(), rdb), "connection refused")
	})
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	// 予約済みポートで即座に接続拒否になる
	_, err := NewRedisClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
}
