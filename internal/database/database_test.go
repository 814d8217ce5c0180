package database

import (
	"path/filepath"
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		dbPath      string
		wantErr     bool
		checkResult func(*testing.T, *DB)
	}{
		{
			name:   "successful connection with in-memory database",
			dbPath: ":memory:",
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn.DB)
			},
		},
		{
			name:   "successful connection with file database",
			dbPath: filepath.Join(t.TempDir(), "nested", "test.db"),
			checkResult: func(t *testing.T, conn *DB) {
				assert.NoError(t, conn.HealthCheck())
			},
		},
		{
			name:   "empty database path creates in-memory database",
			dbPath: "",
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer conn.Close()

			if tt.checkResult != nil {
				tt.checkResult(t, conn)
			}
		})
	}
}

func TestOpen_Drivers(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(config.DatabaseConfig{Driver: "postgres"})
	assert.Error(t, err)

	_, err = Open(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.Error(t, conn.HealthCheck(), "health check should fail after close")
}

func TestDB_HealthCheck_Nil(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}

func TestDB_MigrateAndStatus(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	for _, s := range conn.Status() {
		assert.False(t, s.Exists, s.Table)
	}

	require.NoError(t, conn.Migrate())

	status := conn.Status()
	require.Len(t, status, 3)
	names := []string{}
	for _, s := range status {
		assert.True(t, s.Exists, s.Table)
		names = append(names, s.Table)
	}
	assert.ElementsMatch(t, []string{"bookmarks", "bookmark_tags", "preferences"}, names)
}

func TestDB_ForeignKeyCascade(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.Migrate())

	b := models.Bookmark{Name: "Lighthouse", UserID: "u1"}
	require.NoError(t, conn.Omit("Tags").Create(&b).Error)
	require.NoError(t, conn.Create(&models.BookmarkTag{BookmarkID: b.ID, Tag: "coast"}).Error)

	require.NoError(t, conn.Delete(&models.Bookmark{}, "id = ?", b.ID).Error)

	var count int64
	conn.Model(&models.BookmarkTag{}).Where("bookmark_id = ?", b.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
