package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smapp/internal/app"
	"smapp/internal/config"
)

const sample = `
users:
  - name: ada
    email: ada@example.com
    password: password123
    profile:
      status: Developer
      skills: Go, SQL
      social:
        twitter: https://twitter.com/ada
      experience:
        - title: Lead
          company: Acme
          from: 2022-01-01
          current: true
        - title: Engineer
          company: Initech
          from: 2019-01-01
          to: 2021-12-31
      education:
        - school: MIT
          degree: BSc
          fieldofstudy: CS
          from: 2015-09-01
    posts:
      - Hello world
      - Second post
  - name: bob
    email: bob@example.com
    password: password123
`

func TestLoadAndRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Users, 2)
	assert.Equal(t, 2019, f.Users[0].Profile.Experience[1].From.Year())
	require.NotNil(t, f.Users[0].Profile.Experience[1].To)

	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:seed_test?mode=memory&cache=shared"
	cfg.RedisAddr = ""
	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	res, err := Run(ctx, a, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Profiles: 1, Posts: 2}, res)

	profile, err := a.Profiles.ByUsername(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Lead", profile.Experience[0].Title, "file order is kept")
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
	assert.Equal(t, "https://twitter.com/ada", profile.Social.Twitter)

	res, err = Run(ctx, a, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res, "a second run is idempotent")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
