//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

var testDatabaseURL string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("reactions_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	testDatabaseURL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestRepo(t *testing.T) (*ContentRepo, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pool, err := Connect(ctx, testDatabaseURL)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool))

	_, err = pool.Exec(ctx, `TRUNCATE content_items`)
	require.NoError(t, err)

	t.Cleanup(pool.Close)
	return NewContentRepo(pool), pool
}

func seedItem(t *testing.T, repo *ContentRepo, id, slug string) {
	t.Helper()
	err := repo.Upsert(context.Background(), domain.ContentItem{
		ID:          id,
		Type:        "concept",
		Slug:        slug,
		Title:       "Concept " + slug,
		Team:        "Design Team",
		PublishedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestContentRepo_Exists(t *testing.T) {
	repo, _ := setupTestRepo(t)
	seedItem(t, repo, "c1", "brand-identity")

	exists, err := repo.Exists(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestContentRepo_NonReactableHidden(t *testing.T) {
	repo, pool := setupTestRepo(t)
	seedItem(t, repo, "c1", "brand-identity")

	_, err := pool.Exec(context.Background(), `UPDATE content_items SET reactable = FALSE WHERE id = 'c1'`)
	require.NoError(t, err)

	exists, err := repo.Exists(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, exists)

	ids, err := repo.ListItemIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestContentRepo_ListItemIDs(t *testing.T) {
	repo, _ := setupTestRepo(t)
	seedItem(t, repo, "c1", "brand-identity")
	seedItem(t, repo, "c2", "content-creation")

	ids, err := repo.ListItemIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids)
}

func TestContentRepo_ListItems(t *testing.T) {
	repo, _ := setupTestRepo(t)
	seedItem(t, repo, "c1", "brand-identity")

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, "concept", items[0].Type)
	assert.Equal(t, "Concept brand-identity", items[0].Title)
}

func TestContentRepo_UpsertIsIdempotent(t *testing.T) {
	repo, _ := setupTestRepo(t)
	seedItem(t, repo, "c1", "brand-identity")
	seedItem(t, repo, "c1", "brand-identity-v2")

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "brand-identity-v2", items[0].Slug)
}
