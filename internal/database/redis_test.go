package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/config"
)

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{
			name:     "host and port",
			cfg:      &config.Config{RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2},
			wantAddr: "cache:6380",
			wantDB:   2,
		},
		{
			name:     "url takes precedence",
			cfg:      &config.Config{RedisHost: "ignored", RedisPort: "1", RedisURL: "redis://:secret@redis.test:6379/4"},
			wantAddr: "redis.test:6379",
			wantDB:   4,
		},
		{
			name:    "invalid url",
			cfg:     &config.Config{RedisURL: "http://not-redis"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := RedisOptions(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, opts.Addr)
			assert.Equal(t, tt.wantDB, opts.DB)
		})
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retry test in short mode")
	}
	// Port 1 on localhost refuses connections immediately.
	_, err := NewRedisClient(&config.Config{RedisHost: "127.0.0.1", RedisPort: "1"})
	assert.Error(t, err)
}
