package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
)

// TestPostgresBackend spins up a throwaway Postgres container and runs the
// schema plus a uniqueness round-trip against it. Requires Docker; set
// TEST_WITH_DOCKER=1 to enable.
func TestPostgresBackend(t *testing.T) {
	if os.Getenv("TEST_WITH_DOCKER") == "" {
		t.Skip("set TEST_WITH_DOCKER=1 to run container-backed tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tracker"),
		tcpostgres.WithUsername("tracker"),
		tcpostgres.WithPassword("tracker"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	t.Setenv("DATABASE_URL", dsn)
	svc := New()
	t.Cleanup(func() { _ = svc.Close() })

	assert.Equal(t, "postgres", svc.Backend())

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "postgres", stats["backend"])

	db := svc.GetDB()
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	user := &domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	dup := &domain.User{Username: "alice", PasswordHash: "y"}
	err = db.Create(dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	session := &domain.Session{Token: "tok", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(session).Error)

	var got domain.Session
	require.NoError(t, db.First(&got, "token = ?", "tok").Error)
	assert.Equal(t, user.ID, got.UserID)
}
