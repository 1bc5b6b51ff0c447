package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

func TestApplyCandidateToJob(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	job := mustJob(t, s, models.Job{Title: "Data Engineer"})
	c := mustCandidate(t, s, models.Candidate{Name: "Obi"})

	app, err := s.ApplyCandidateToJob(ctx, c.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageApplied, app.Status)
	assert.Equal(t, "Data Engineer", app.JobTitle)
	assert.False(t, app.AppliedAt.IsZero())

	_, err = s.ApplyCandidateToJob(ctx, c.ID, job.ID)
	require.ErrorIs(t, err, ErrDuplicateApplication)
	assert.ErrorIs(t, err, ErrDuplicate)

	pair := []database.Cond{database.Eq(database.ColCandidateID, c.ID), database.Eq(database.ColJobID, job.ID)}
	assert.Equal(t, 1, countWhere(t, s, database.JobApplications, pair...))

	n := countWhere(t, s, database.TimelineEvents,
		database.Eq(database.ColCandidateID, c.ID),
		database.Eq(database.ColType, string(models.EventJobApplication)))
	assert.Equal(t, 1, n)
}

func TestApplyCandidateToJob_NotFound(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	job := mustJob(t, s, models.Job{Title: "Data Engineer"})
	c := mustCandidate(t, s, models.Candidate{Name: "Obi"})

	_, err := s.ApplyCandidateToJob(ctx, c.ID, "missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "job", nf.Entity)

	_, err = s.ApplyCandidateToJob(ctx, "missing", job.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "candidate", nf.Entity)

	assert.Zero(t, countWhere(t, s, database.JobApplications))
}

func TestUpdateJobApplicationStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	job := mustJob(t, s, models.Job{Title: "Designer"})
	c := mustCandidate(t, s, models.Candidate{Name: "Pelumi"})
	app, err := s.ApplyCandidateToJob(ctx, c.ID, job.ID)
	require.NoError(t, err)

	got, err := s.UpdateJobApplicationStatus(ctx, app.ID, models.StageTech, "passed screen")
	require.NoError(t, err)
	assert.Equal(t, models.StageTech, got.Status)
	assert.Equal(t, "passed screen", got.Notes)
	assert.True(t, got.UpdatedAt.After(app.UpdatedAt))
	assert.True(t, got.AppliedAt.Equal(app.AppliedAt))

	events, err := s.GetCandidateTimeline(ctx, c.ID)
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, models.EventStatusChange, last.Type)
	assert.Equal(t, "applied", last.Metadata["oldStatus"])
	assert.Equal(t, "tech", last.Metadata["newStatus"])
	assert.Equal(t, "passed screen", last.Metadata["notes"])

	// The candidate's own stage is tracked separately.
	cand, err := s.GetCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageApplied, cand.Stage)

	_, err = s.UpdateJobApplicationStatus(ctx, "missing", models.StageHired, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateJobApplicationStatus(ctx, app.ID, "interviewing", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCandidateJobStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	c := mustCandidate(t, s, models.Candidate{Name: "Remi"})
	statuses := []models.Stage{models.StageApplied, models.StageHired, models.StageRejected}
	for _, st := range statuses {
		job := mustJob(t, s, models.Job{Title: "Role " + string(st)})
		app, err := s.ApplyCandidateToJob(ctx, c.ID, job.ID)
		require.NoError(t, err)
		if st != models.StageApplied {
			_, err = s.UpdateJobApplicationStatus(ctx, app.ID, st, "")
			require.NoError(t, err)
		}
	}

	status, err := s.GetCandidateJobStatus(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Summary.TotalApplications)
	assert.Len(t, status.Summary.Hired, 1)
	assert.Len(t, status.Summary.Rejected, 1)
	assert.Len(t, status.Summary.InterviewScheduled, 0)
	assert.Len(t, status.Summary.Applied, 1)
	assert.Len(t, status.Applications, 3)
}

func TestGetCandidateJobStatus_LiveJob(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	job := mustJob(t, s, models.Job{Title: "Old Title"})
	c := mustCandidate(t, s, models.Candidate{Name: "Sade"})
	_, err := s.ApplyCandidateToJob(ctx, c.ID, job.ID)
	require.NoError(t, err)

	_, err = s.UpdateJob(ctx, job.ID, JobPatch{Title: ptr("New Title")})
	require.NoError(t, err)

	status, err := s.GetCandidateJobStatus(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, status.Applications, 1)
	require.NotNil(t, status.Applications[0].Job)
	assert.Equal(t, "New Title", status.Applications[0].JobTitle)
	assert.Equal(t, "new-title", status.Applications[0].Job.Slug)

	apps, err := s.ListJobApplications(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Title", apps[0].JobTitle)

	_, err = s.GetCandidateJobStatus(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummarize(t *testing.T) {
	apps := func(stages ...models.Stage) []ApplicationDetail {
		var out []ApplicationDetail
		for _, st := range stages {
			out = append(out, ApplicationDetail{JobApplication: models.JobApplication{Status: st}})
		}
		return out
	}

	tests := []struct {
		name                                       string
		in                                         []ApplicationDetail
		hired, rejected, interviewing, appliedOnly int
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"mixed", apps(models.StageApplied, models.StageHired, models.StageRejected), 1, 1, 0, 1},
		{"interviews", apps(models.StageScreen, models.StageTech, models.StageOffer), 0, 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Summarize(tt.in)
			assert.Equal(t, len(tt.in), sum.TotalApplications)
			assert.Len(t, sum.Hired, tt.hired)
			assert.Len(t, sum.Rejected, tt.rejected)
			assert.Len(t, sum.InterviewScheduled, tt.interviewing)
			assert.Len(t, sum.Applied, tt.appliedOnly)
		})
	}
}
