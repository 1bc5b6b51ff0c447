package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

// ApplyCandidateToJob records that a candidate applied to a job. A second
// application for the same pair fails with ErrDuplicateApplication.
func (s *Service) ApplyCandidateToJob(ctx context.Context, candidateID, jobID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, candidateID); err != nil {
			return err
		}
		exists, err := database.JobApplications.Exists(ctx, tx,
			database.Eq(database.ColCandidateID, candidateID),
			database.Eq(database.ColJobID, jobID))
		if err != nil {
			return err
		}
		if exists {
			return &DuplicateError{Entity: entityApplication, Field: "candidate_id,job_id", Value: candidateID + "," + jobID}
		}
		job, err := database.Jobs.Get(ctx, tx, jobID)
		if err != nil {
			return notFound(entityJob, jobID, err)
		}

		app = models.NewJobApplication(models.JobApplication{
			CandidateID: candidateID,
			JobID:       jobID,
			JobTitle:    job.Title,
			Status:      models.StageApplied,
		})
		if err := database.JobApplications.Insert(ctx, tx, &app); err != nil {
			return duplicate(entityApplication, "candidate_id,job_id", candidateID+","+jobID, err)
		}
		return appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: candidateID,
			Type:        models.EventJobApplication,
			Title:       "Applied to " + job.Title,
			Description: fmt.Sprintf("Application submitted for %s", job.Title),
			Metadata: map[string]any{
				"applicationId": app.ID,
				"jobId":         jobID,
				"jobTitle":      job.Title,
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("apply to job: %w", err)
	}

	s.log.Debug("application created", "id", app.ID, "candidate_id", candidateID, "job_id", jobID)
	return &app, nil
}

// UpdateJobApplicationStatus moves an application to status and logs a
// status_change event on the candidate, even when the status is unchanged.
func (s *Service) UpdateJobApplicationStatus(ctx context.Context, applicationID string, status models.Stage, notes string) (*models.JobApplication, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", status)}
	}

	var saved *models.JobApplication
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		var old models.Stage
		var err error
		saved, err = database.JobApplications.Update(ctx, tx, applicationID, func(a *models.JobApplication) error {
			old = a.Status
			a.Status = status
			a.Notes = notes
			return nil
		})
		if err != nil {
			return notFound(entityApplication, applicationID, err)
		}

		return appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: saved.CandidateID,
			Type:        models.EventStatusChange,
			Title:       "Application status updated",
			Description: fmt.Sprintf("%s: %s to %s", saved.JobTitle, StageLabel(old), StageLabel(status)),
			Metadata: map[string]any{
				"applicationId": saved.ID,
				"jobId":         saved.JobID,
				"oldStatus":     string(old),
				"newStatus":     string(status),
				"notes":         notes,
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return saved, nil
}

// ListJobApplications returns a candidate's applications oldest first.
func (s *Service) ListJobApplications(ctx context.Context, candidateID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := s.store.View(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, candidateID); err != nil {
			return err
		}
		var err error
		apps, err = database.JobApplications.Find(ctx, tx, database.Eq(database.ColCandidateID, candidateID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ApplicationDetail is an application joined with the current job record.
// Job is nil when the job no longer exists.
type ApplicationDetail struct {
	models.JobApplication
	Job *models.Job `json:"job,omitempty"`
}

// ApplicationSummary partitions applications by status. It is computed on
// every call and never stored.
type ApplicationSummary struct {
	TotalApplications  int                 `json:"total_applications"`
	Hired              []ApplicationDetail `json:"hired"`
	Rejected           []ApplicationDetail `json:"rejected"`
	InterviewScheduled []ApplicationDetail `json:"interview_scheduled"`
	Applied            []ApplicationDetail `json:"applied"`
}

type CandidateJobStatus struct {
	CandidateID  string              `json:"candidate_id"`
	Applications []ApplicationDetail `json:"applications"`
	Summary      ApplicationSummary  `json:"summary"`
}

// GetCandidateJobStatus returns every application of the candidate with the
// live job attached, plus a summary by status.
func (s *Service) GetCandidateJobStatus(ctx context.Context, candidateID string) (*CandidateJobStatus, error) {
	status := &CandidateJobStatus{CandidateID: candidateID, Applications: []ApplicationDetail{}}
	err := s.store.View(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, candidateID); err != nil {
			return err
		}
		apps, err := database.JobApplications.Find(ctx, tx, database.Eq(database.ColCandidateID, candidateID))
		if err != nil {
			return err
		}
		for _, a := range apps {
			d := ApplicationDetail{JobApplication: a}
			job, err := database.Jobs.Get(ctx, tx, a.JobID)
			switch {
			case err == nil:
				d.Job = job
				d.JobTitle = job.Title
			case !errors.Is(err, database.ErrNotFound):
				return err
			}
			status.Applications = append(status.Applications, d)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("candidate job status: %w", err)
	}
	status.Summary = Summarize(status.Applications)
	return status, nil
}

// Summarize partitions apps by status. Screen, tech and offer count as
// interview scheduled.
func Summarize(apps []ApplicationDetail) ApplicationSummary {
	sum := ApplicationSummary{
		TotalApplications:  len(apps),
		Hired:              []ApplicationDetail{},
		Rejected:           []ApplicationDetail{},
		InterviewScheduled: []ApplicationDetail{},
		Applied:            []ApplicationDetail{},
	}
	for _, a := range apps {
		switch {
		case a.Status == models.StageHired:
			sum.Hired = append(sum.Hired, a)
		case a.Status == models.StageRejected:
			sum.Rejected = append(sum.Rejected, a)
		case a.Status.Interviewing():
			sum.InterviewScheduled = append(sum.InterviewScheduled, a)
		case a.Status == models.StageApplied:
			sum.Applied = append(sum.Applied, a)
		}
	}
	return sum
}
