package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

// Report describes what a seeding run created.
type Report struct {
	Seeded       bool
	Jobs         int
	Candidates   int
	Assessments  int
	Applications int
}

// Seeder loads a generated Dataset through the service, so every record
// passes the same checks and timeline logging as any other write.
type Seeder struct {
	svc  *service.Service
	opts Options
	log  *slog.Logger
}

func NewSeeder(svc *service.Service, opts Options, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{svc: svc, opts: opts, log: logger}
}

// Run seeds the store if it has no jobs. A store that already has jobs is
// left alone and the returned Report has Seeded false.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	stats, err := s.svc.GetStats(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("seed: %w", err)
	}
	if stats.Jobs > 0 {
		s.log.Debug("store already has jobs, skipping seed", "jobs", stats.Jobs)
		return Report{}, nil
	}

	ds := NewGenerator(s.opts.Seed).Generate(s.opts)
	rep := Report{Seeded: true}

	for _, j := range ds.Jobs {
		if _, err := s.svc.CreateJob(ctx, j); err != nil {
			return rep, fmt.Errorf("seed job %q: %w", j.Title, err)
		}
		rep.Jobs++
	}
	for _, c := range ds.Candidates {
		if _, err := s.svc.CreateCandidate(ctx, c); err != nil {
			return rep, fmt.Errorf("seed candidate %q: %w", c.Email, err)
		}
		rep.Candidates++
	}
	for _, a := range ds.Assessments {
		if _, err := s.svc.CreateAssessment(ctx, a); err != nil {
			return rep, fmt.Errorf("seed assessment %q: %w", a.Title, err)
		}
		rep.Assessments++
	}
	for _, p := range ds.Applications {
		app, err := s.svc.ApplyCandidateToJob(ctx, p.CandidateID, p.JobID)
		if err != nil {
			return rep, fmt.Errorf("seed application: %w", err)
		}
		if p.Status != models.StageApplied {
			if _, err := s.svc.UpdateJobApplicationStatus(ctx, app.ID, p.Status, ""); err != nil {
				return rep, fmt.Errorf("seed application status: %w", err)
			}
		}
		rep.Applications++
	}

	s.log.Info("store seeded",
		"jobs", rep.Jobs,
		"candidates", rep.Candidates,
		"assessments", rep.Assessments,
		"applications", rep.Applications)
	return rep, nil
}
