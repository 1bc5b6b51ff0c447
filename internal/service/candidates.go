package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

// CandidateFilter selects candidates for ListCandidates.
type CandidateFilter struct {
	Stage  models.Stage
	JobID  string
	Search string // case-insensitive, over name and email
	PageRequest
}

func (f CandidateFilter) match(c *models.Candidate) bool {
	if f.Stage != "" && c.Stage != f.Stage {
		return false
	}
	if f.JobID != "" && c.JobID != f.JobID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q)
	}
	return true
}

// ListCandidates returns matching candidates in creation order.
func (s *Service) ListCandidates(ctx context.Context, f CandidateFilter) (Page[models.Candidate], error) {
	if f.Stage != "" && !f.Stage.Valid() {
		return Page[models.Candidate]{}, &ValidationError{Field: "stage", Reason: fmt.Sprintf("unknown value %q", f.Stage)}
	}

	var out []models.Candidate
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		out, err = database.Candidates.Scan(ctx, tx, f.match)
		return err
	})
	if err != nil {
		return Page[models.Candidate]{}, fmt.Errorf("list candidates: %w", err)
	}
	return paginate(out, f.PageRequest, s.defaultPageSize), nil
}

func (s *Service) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var c *models.Candidate
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		c, err = database.Candidates.Get(ctx, tx, id)
		return notFound(entityCandidate, id, err)
	})
	return c, err
}

// CreateCandidate stores a candidate and logs the "Application Submitted"
// stage change in the same transaction. A non-empty JobID must resolve.
func (s *Service) CreateCandidate(ctx context.Context, in models.Candidate) (*models.Candidate, error) {
	c := models.NewCandidate(in)
	c.Name = strings.TrimSpace(c.Name)
	if err := validateStruct(&c); err != nil {
		return nil, err
	}

	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if c.JobID != "" {
			if err := requireJob(ctx, tx, c.JobID); err != nil {
				return err
			}
		}
		if err := database.Candidates.Insert(ctx, tx, &c); err != nil {
			return duplicate(entityCandidate, "id", c.ID, err)
		}
		return appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: c.ID,
			Type:        models.EventStageChange,
			Title:       "Application Submitted",
			Description: fmt.Sprintf("%s entered the pipeline at %s", c.Name, StageLabel(c.Stage)),
			Metadata:    map[string]any{"toStage": string(c.Stage)},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	s.log.Debug("candidate created", "id", c.ID, "job_id", c.JobID, "stage", c.Stage)
	return &c, nil
}

// CandidatePatch is a partial update. Nil fields are left unchanged.
type CandidatePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Stage       *models.Stage
	JobID       *string
	CoverLetter *string
}

func (p CandidatePatch) apply(c *models.Candidate) {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Stage, p.Stage)
	setIf(&c.JobID, p.JobID)
	setIf(&c.CoverLetter, p.CoverLetter)
}

// UpdateCandidate applies patch. A stage that differs from the stored one
// appends exactly one stage_change event recording both stages.
func (s *Service) UpdateCandidate(ctx context.Context, id string, patch CandidatePatch) (*models.Candidate, error) {
	var (
		saved *models.Candidate
		from  models.Stage
	)
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		var err error
		saved, err = database.Candidates.Update(ctx, tx, id, func(cur *models.Candidate) error {
			from = cur.Stage
			next := *cur
			patch.apply(&next)
			next = models.NewCandidate(next)
			if err := validateStruct(&next); err != nil {
				return err
			}
			if next.JobID != "" && next.JobID != cur.JobID {
				if err := requireJob(ctx, tx, next.JobID); err != nil {
					return err
				}
			}
			*cur = next
			return nil
		})
		if err != nil {
			return notFound(entityCandidate, id, err)
		}

		if saved.Stage == from {
			return nil
		}
		return appendEvent(ctx, tx, stageChangeEvent(saved.ID, from, saved.Stage))
	})
	if err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	return saved, nil
}

func stageChangeEvent(candidateID string, from, to models.Stage) models.TimelineEvent {
	return models.TimelineEvent{
		CandidateID: candidateID,
		Type:        models.EventStageChange,
		Title:       "Moved to " + StageLabel(to),
		Description: fmt.Sprintf("Stage changed from %s to %s", StageLabel(from), StageLabel(to)),
		Metadata: map[string]any{
			"fromStage": string(from),
			"toStage":   string(to),
		},
	}
}

// DeleteCandidate removes the candidate with its timeline, notes, assessment
// responses and job applications in one transaction.
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if _, err := database.Candidates.Get(ctx, tx, id); err != nil {
			return notFound(entityCandidate, id, err)
		}
		return deleteCandidateTx(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	s.log.Info("candidate deleted", "id", id)
	return nil
}

func deleteCandidateTx(ctx context.Context, tx *database.Tx, id string) error {
	owned := database.Eq(database.ColCandidateID, id)
	if _, err := database.TimelineEvents.DeleteWhere(ctx, tx, owned); err != nil {
		return err
	}
	if _, err := database.Notes.DeleteWhere(ctx, tx, owned); err != nil {
		return err
	}
	if _, err := database.AssessmentResponses.DeleteWhere(ctx, tx, owned); err != nil {
		return err
	}
	if _, err := database.JobApplications.DeleteWhere(ctx, tx, owned); err != nil {
		return err
	}
	return database.Candidates.Delete(ctx, tx, id)
}

// GetCandidateTimeline returns the candidate's events oldest first.
func (s *Service) GetCandidateTimeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := s.store.View(ctx, func(tx *database.Tx) error {
		if _, err := database.Candidates.Get(ctx, tx, candidateID); err != nil {
			return notFound(entityCandidate, candidateID, err)
		}
		var err error
		events, err = database.TimelineEvents.Find(ctx, tx, database.Eq(database.ColCandidateID, candidateID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("candidate timeline: %w", err)
	}
	slices.SortStableFunc(events, func(a, b models.TimelineEvent) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return events, nil
}

func requireJob(ctx context.Context, tx *database.Tx, id string) error {
	ok, err := database.Jobs.Exists(ctx, tx, database.Eq("id", id))
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: entityJob, ID: id}
	}
	return nil
}

func requireCandidate(ctx context.Context, tx *database.Tx, id string) error {
	ok, err := database.Candidates.Exists(ctx, tx, database.Eq("id", id))
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: entityCandidate, ID: id}
	}
	return nil
}
