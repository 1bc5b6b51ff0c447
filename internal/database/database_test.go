package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/talentflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// createTestStore opens a fresh store in a temp dir with a fixed clock.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func insertJob(t *testing.T, s *Store, job models.Job) models.Job {
	t.Helper()
	job = models.NewJob(job)
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		return Jobs.Insert(context.Background(), tx, &job)
	}))
	return job
}

func TestOpenDir_CreatesDatabaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := OpenDir(context.Background(), dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, DatabaseName))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DatabaseName), s.Path())
}

func TestOpen_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(ctx, path)
		require.NoError(t, err, "open iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(ctx, path)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCorruption))
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(context.Background(), "/nonexistent/dir/test.db")
	require.Error(t, err)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
}

func TestClose_MultipleCalls(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	err = s.View(context.Background(), func(tx *Tx) error { return nil })
	assert.True(t, IsKind(err, KindClosed))
}

func TestInsert_AssignsIDAndTimestamps(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	job := models.Job{Title: "QA Engineer", Slug: "qa-engineer", Status: models.JobStatusActive}
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return Jobs.Insert(ctx, tx, &job)
	}))

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, fixedNow, job.CreatedAt)
	assert.Equal(t, fixedNow, job.UpdatedAt)

	var got *models.Job
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		var err error
		got, err = Jobs.Get(ctx, tx, job.ID)
		return err
	}))
	assert.Equal(t, "QA Engineer", got.Title)
	assert.True(t, fixedNow.Equal(got.CreatedAt))
}

func TestInsert_KeepsCallerID(t *testing.T) {
	s := createTestStore(t)
	job := insertJob(t, s, models.Job{ID: "job-42", Title: "Designer", Slug: "designer"})
	assert.Equal(t, "job-42", job.ID)
}

func TestInsert_OverwritesCallerTimestamps(t *testing.T) {
	s := createTestStore(t)
	job := insertJob(t, s, models.Job{
		Title:     "Designer",
		Slug:      "designer",
		CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, fixedNow, job.CreatedAt)
}

func TestInsert_UniqueSlugViolation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	insertJob(t, s, models.Job{Title: "Backend", Slug: "backend"})

	err := s.Update(ctx, func(tx *Tx) error {
		dup := models.NewJob(models.Job{Title: "Backend", Slug: "backend"})
		return Jobs.Insert(ctx, tx, &dup)
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConstraint))
	assert.True(t, IsUniqueViolation(err))
}

func TestUpdate_PatchesAndStampsUpdatedAt(t *testing.T) {
	now := fixedNow
	s := createTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	job := insertJob(t, s, models.Job{Title: "Backend", Slug: "backend"})

	now = now.Add(time.Hour)
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		_, err := Jobs.Update(ctx, tx, job.ID, func(j *models.Job) error {
			j.Status = models.JobStatusArchived
			j.ID = "something-else"
			return nil
		})
		return err
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := Jobs.Get(ctx, tx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusArchived, got.Status)
		assert.True(t, fixedNow.Equal(got.CreatedAt))
		assert.True(t, now.Equal(got.UpdatedAt))

		archived, err := Jobs.Find(ctx, tx, Eq(ColStatus, "archived"))
		require.NoError(t, err)
		assert.Len(t, archived, 1)
		return nil
	}))
}

func TestUpdate_MissingRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(tx *Tx) error {
		_, err := Jobs.Update(ctx, tx, "missing", func(*models.Job) error { return nil })
		return err
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx *Tx) error {
		j1 := models.NewJob(models.Job{Title: "A", Slug: "a"})
		if err := Jobs.Insert(ctx, tx, &j1); err != nil {
			return err
		}
		j2 := models.NewJob(models.Job{Title: "B", Slug: "b"})
		if err := Jobs.Insert(ctx, tx, &j2); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		n, err := Jobs.Count(ctx, tx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestUpdate_RollsBackOnPanic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Update(ctx, func(tx *Tx) error {
			j := models.NewJob(models.Job{Title: "A", Slug: "a"})
			if err := Jobs.Insert(ctx, tx, &j); err != nil {
				return err
			}
			panic("interrupted")
		})
	})

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		n, err := Jobs.Count(ctx, tx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestView_RejectsWrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.View(ctx, func(tx *Tx) error {
		assert.False(t, tx.Writable())
		j := models.NewJob(models.Job{Title: "A", Slug: "a"})
		return Jobs.Insert(ctx, tx, &j)
	})
	assert.True(t, IsKind(err, KindReadOnly))
}

func TestDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	job := insertJob(t, s, models.Job{Title: "A", Slug: "a"})

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return Jobs.Delete(ctx, tx, job.ID)
	}))

	err := s.Update(ctx, func(tx *Tx) error {
		return Jobs.Delete(ctx, tx, job.ID)
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFind_CompositePair(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		for _, pair := range [][2]string{{"c1", "j1"}, {"c1", "j2"}, {"c2", "j1"}} {
			app := models.NewJobApplication(models.JobApplication{CandidateID: pair[0], JobID: pair[1]})
			if err := JobApplications.Insert(ctx, tx, &app); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := JobApplications.Find(ctx, tx, Eq(ColCandidateID, "c1"), Eq(ColJobID, "j1"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, fixedNow.Equal(got[0].AppliedAt))

		byCandidate, err := JobApplications.Find(ctx, tx, Eq(ColCandidateID, "c1"))
		require.NoError(t, err)
		assert.Len(t, byCandidate, 2)

		_, err = JobApplications.First(ctx, tx, Eq(ColCandidateID, "c3"))
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))

	err := s.Update(ctx, func(tx *Tx) error {
		dup := models.NewJobApplication(models.JobApplication{CandidateID: "c2", JobID: "j1"})
		return JobApplications.Insert(ctx, tx, &dup)
	})
	assert.True(t, IsUniqueViolation(err))
}

func TestFind_UnknownColumn(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.View(ctx, func(tx *Tx) error {
		_, err := Jobs.Find(ctx, tx, Eq("title; DROP TABLE jobs", "x"))
		return err
	})
	assert.ErrorContains(t, err, "no index column")
}

func TestScanAndDeleteWhere(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		for i, content := range []string{"first", "second", "third"} {
			cand := "c1"
			if i == 2 {
				cand = "c2"
			}
			n := models.NewNote(models.Note{CandidateID: cand, Content: content})
			if err := Notes.Insert(ctx, tx, &n); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		all, err := Notes.Scan(ctx, tx, nil)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "first", all[0].Content)

		long, err := Notes.Scan(ctx, tx, func(n *models.Note) bool { return len(n.Content) > 5 })
		require.NoError(t, err)
		require.Len(t, long, 1)
		assert.Equal(t, "second", long[0].Content)

		n, err := Notes.DeleteWhere(ctx, tx, Eq(ColCandidateID, "c1"))
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		_, err = Notes.DeleteWhere(ctx, tx)
		assert.Error(t, err)
		return nil
	}))
}

func TestWithInterceptor_SeesEveryWrite(t *testing.T) {
	var seen []Op
	s := createTestStore(t, WithInterceptor(func(op Op, table string, rec Record, now time.Time) {
		assert.Equal(t, "jobs", table)
		seen = append(seen, op)
	}))
	ctx := context.Background()
	job := insertJob(t, s, models.Job{Title: "A", Slug: "a"})

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		_, err := Jobs.Update(ctx, tx, job.ID, func(j *models.Job) error { j.Title = "B"; return nil })
		return err
	}))
	assert.Equal(t, []Op{OpInsert, OpUpdate}, seen)
}

func TestExtraFieldsRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	job := insertJob(t, s, models.Job{Title: "A", Slug: "a", Extra: map[string]any{"remote": true}})

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := Jobs.Get(ctx, tx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, true, got.Extra["remote"])
		return nil
	}))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindTimeout, classify(context.DeadlineExceeded))
	assert.Equal(t, KindIO, classify(errors.New("disk on fire")))

	err := wrapErr("get", "jobs", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsKind(err, KindIO))
}

// BenchmarkInsertJob benchmarks job inserts, one transaction each.
func BenchmarkInsertJob(b *testing.B) {
	s, err := Open(context.Background(), filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job := models.NewJob(models.Job{Title: "Job"})
		job.Slug = job.ID
		if err := s.Update(ctx, func(tx *Tx) error { return Jobs.Insert(ctx, tx, &job) }); err != nil {
			b.Fatal(err)
		}
	}
}

func TestMax(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		n, err := Jobs.Max(ctx, tx, ColOrder)
		assert.Zero(t, n)
		return err
	}))

	insertJob(t, s, models.Job{Title: "A", Slug: "a", Order: 3})
	insertJob(t, s, models.Job{Title: "B", Slug: "b", Order: 9})

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		n, err := Jobs.Max(ctx, tx, ColOrder)
		assert.Equal(t, 9, n)
		return err
	}))

	err := s.View(ctx, func(tx *Tx) error {
		_, err := Jobs.Max(ctx, tx, "salary")
		return err
	})
	assert.ErrorContains(t, err, "no index column")
}
