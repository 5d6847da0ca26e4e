package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite writes a day's tasks while readers
// list the same day. Readers must only ever see fully written rows.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteTaskRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			start := 5*60 + i*10
			task := testutil.NewTestTask(taskDay, fmt.Sprintf("task-%d", i),
				fmt.Sprintf("%02d:%02d", start/60, start%60),
				fmt.Sprintf("%02d:%02d", (start+5)/60, (start+5)%60))
			if err := repo.Upsert(ctx, task); err != nil {
				t.Errorf("writer: upsert task %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				tasks, err := repo.ListByDate(ctx, taskDay)
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, tk := range tasks {
					if tk.ID == "" || tk.Name == "" || tk.DurationMin != 5 {
						t.Errorf("reader %d: saw partial row %+v", reader, tk)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	tasks, err := repo.ListByDate(ctx, taskDay)
	require.NoError(t, err)
	assert.Len(t, tasks, 20)
}

// TestConcurrentAccess_PointsAwardedOnce checks that concurrent single
// statement increments do not lose updates.
func TestConcurrentAccess_PointsAwardedOnce(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserProfileRepo(database)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddPoints(ctx, 0.25); err != nil {
				t.Errorf("add points: %v", err)
			}
		}()
	}
	wg.Wait()

	p, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.LeisurePoints, 1e-9)
}
