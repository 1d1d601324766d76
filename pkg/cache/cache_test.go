package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artvault/artvault/pkg/cache/redis"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		cfg         Config
		wantErr     bool
		errContains string
	}{
		{
			name: "redis driver",
			cfg: Config{
				Driver: DriverRedis,
				Redis:  redis.Config{Host: mr.Host(), Port: mr.Port()},
			},
		},
		{
			name: "empty driver defaults to redis",
			cfg: Config{
				Redis: redis.Config{Host: mr.Host(), Port: mr.Port()},
			},
		},
		{
			name: "in-memory driver",
			cfg:  Config{Driver: DriverInMemory},
		},
		{
			name:        "unknown driver",
			cfg:         Config{Driver: "memcached"},
			wantErr:     true,
			errContains: "unsupported cache driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			defer c.Close()
			assert.NoError(t, c.Ping(context.Background()))
		})
	}
}
