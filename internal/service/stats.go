package service

import (
	"context"
	"fmt"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

type Stats struct {
	Jobs        int `json:"jobs"`
	Candidates  int `json:"candidates"`
	Assessments int `json:"assessments"`
}

// Dashboard extends Stats with per-stage and per-status breakdowns.
type Dashboard struct {
	Stats
	Applications      int                      `json:"applications"`
	CandidatesByStage map[models.Stage]int     `json:"candidates_by_stage"`
	JobsByStatus      map[models.JobStatus]int `json:"jobs_by_status"`
}

// countStats reads every total inside tx, so they come from one snapshot.
func countStats(ctx context.Context, tx *database.Tx) (Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.Jobs, err = database.Jobs.Count(ctx, tx); err != nil {
		return Stats{}, err
	}
	if st.Candidates, err = database.Candidates.Count(ctx, tx); err != nil {
		return Stats{}, err
	}
	if st.Assessments, err = database.Assessments.Count(ctx, tx); err != nil {
		return Stats{}, err
	}
	return st, nil
}

// GetStats returns record counts. It never writes.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		st, err = countStats(ctx, tx)
		return err
	})
	if err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{
		CandidatesByStage: make(map[models.Stage]int, len(models.Stages)),
		JobsByStatus:      make(map[models.JobStatus]int, 2),
	}
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		if d.Stats, err = countStats(ctx, tx); err != nil {
			return err
		}
		if d.Applications, err = database.JobApplications.Count(ctx, tx); err != nil {
			return err
		}
		for _, stage := range models.Stages {
			n, err := database.Candidates.Count(ctx, tx, database.Eq(database.ColStage, string(stage)))
			if err != nil {
				return err
			}
			d.CandidatesByStage[stage] = n
		}
		for _, status := range []models.JobStatus{models.JobStatusActive, models.JobStatusArchived} {
			n, err := database.Jobs.Count(ctx, tx, database.Eq(database.ColStatus, string(status)))
			if err != nil {
				return err
			}
			d.JobsByStatus[status] = n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return d, nil
}
