package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAllow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		setup   func(expect *redismock.ExpectedCmd)
		want    bool
		wantErr bool
	}{
		{
			name:  "Token available",
			setup: func(expect *redismock.ExpectedCmd) { expect.SetVal(int64(1)) },
			want:  true,
		},
		{
			name:  "Bucket empty",
			setup: func(expect *redismock.ExpectedCmd) { expect.SetVal(int64(0)) },
			want:  false,
		},
		{
			name:    "Redis unavailable",
			setup:   func(expect *redismock.ExpectedCmd) { expect.SetErr(errors.New("dial tcp: connection refused")) },
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock := redismock.NewClientMock()

			l := NewRedis(db, 5, 20, "court")
			l.now = func() time.Time { return now }

			expect := mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{"court:user:7"}, float64(5), 20, now.UnixMilli())
			tc.setup(expect)

			got, err := l.Allow(context.Background(), "user:7")
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewRedisDefaults(t *testing.T) {
	t.Parallel()

	db, _ := redismock.NewClientMock()
	l := NewRedis(db, 0, 0, " ")

	assert.Equal(t, 1.0, l.rate)
	assert.Equal(t, 1, l.burst)
	assert.Equal(t, "rl", l.prefix)
}
