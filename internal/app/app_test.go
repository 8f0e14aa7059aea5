package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smapp/internal/config"
)

func TestNew_SQLiteWithoutOptionalBackends(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:app_test?mode=memory&cache=shared"
	cfg.RedisAddr = ""
	cfg.NATSURL = ""
	cfg.ResetDB = true

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.Nil(t, a.Cache)
	ctx := context.Background()

	token, err := a.Auth.Register(ctx, "ada", "ada@example.com", "password123")
	require.NoError(t, err)
	claims, err := a.JWT.ValidateToken(token)
	require.NoError(t, err)

	post, err := a.Posts.Create(ctx, claims.UserID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "ada", post.Name)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	var published bool
	for _, mf := range families {
		if mf.GetName() == "smapp_events_published_total" {
			published = true
		}
	}
	assert.True(t, published, "events are counted through the instrumented publisher")
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = "oracle"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
