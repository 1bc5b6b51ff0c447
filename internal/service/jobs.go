package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

// JobFilter selects jobs for ListJobs. Zero fields do not filter.
type JobFilter struct {
	Status models.JobStatus
	Tags   []string // match any
	Search string   // case-insensitive, over title, description and tags
	PageRequest
}

func (f JobFilter) match(j *models.Job) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(t string) bool { return slices.Contains(j.Tags, t) }) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Description), q) {
			return true
		}
		return slices.ContainsFunc(j.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) })
	}
	return true
}

// ListJobs returns the jobs matching f ordered by Order ascending.
func (s *Service) ListJobs(ctx context.Context, f JobFilter) (Page[models.Job], error) {
	if f.Status != "" && !f.Status.Valid() {
		return Page[models.Job]{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", f.Status)}
	}

	var jobs []models.Job
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		jobs, err = database.Jobs.Scan(ctx, tx, f.match)
		return err
	})
	if err != nil {
		return Page[models.Job]{}, fmt.Errorf("list jobs: %w", err)
	}

	slices.SortStableFunc(jobs, func(a, b models.Job) int { return cmp.Compare(a.Order, b.Order) })
	return paginate(jobs, f.PageRequest, s.defaultPageSize), nil
}

func (s *Service) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job *models.Job
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		job, err = database.Jobs.Get(ctx, tx, id)
		return notFound(entityJob, id, err)
	})
	return job, err
}

func (s *Service) GetJobBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job *models.Job
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		job, err = database.Jobs.First(ctx, tx, database.Eq(database.ColSlug, slug))
		return notFound(entityJob, slug, err)
	})
	return job, err
}

// CreateJob stores a new job. The slug is derived from the title when absent
// and suffixed until unique. An Order of 0 appends the job after the last
// one. When in.ID names an existing job that job is replaced, keeping its
// creation time.
func (s *Service) CreateJob(ctx context.Context, in models.Job) (*models.Job, error) {
	job := models.NewJob(in)
	job.Title = strings.TrimSpace(job.Title)
	if err := validateStruct(&job); err != nil {
		return nil, err
	}

	var saved *models.Job
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		existing, err := database.Jobs.Get(ctx, tx, job.ID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return err
		}

		job.Slug, err = s.uniqueSlug(ctx, tx, slugBase(job.Slug, job.Title), job.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			if job.Order == 0 {
				job.Order = existing.Order
			}
			saved, err = database.Jobs.Update(ctx, tx, job.ID, func(cur *models.Job) error {
				created := cur.CreatedAt
				*cur = job
				cur.CreatedAt = created
				return nil
			})
			return duplicate(entityJob, "slug", job.Slug, err)
		}

		if job.Order == 0 {
			last, err := database.Jobs.Max(ctx, tx, database.ColOrder)
			if err != nil {
				return err
			}
			job.Order = last + 1
		}
		if err := database.Jobs.Insert(ctx, tx, &job); err != nil {
			return duplicate(entityJob, "slug", job.Slug, err)
		}
		saved = &job
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.Debug("job saved", "id", saved.ID, "slug", saved.Slug, "order", saved.Order)
	return saved, nil
}

// JobPatch is a partial update. Nil fields are left unchanged.
type JobPatch struct {
	Title        *string
	Slug         *string
	Description  *string
	Requirements *[]string
	Benefits     *[]string
	Tags         *[]string
	Location     *string
	Salary       *string
	Type         *models.JobType
	Department   *string
	Status       *models.JobStatus
	Order        *int
}

func (p JobPatch) apply(j *models.Job) {
	setIf(&j.Title, p.Title)
	setIf(&j.Slug, p.Slug)
	setIf(&j.Description, p.Description)
	setIf(&j.Requirements, p.Requirements)
	setIf(&j.Benefits, p.Benefits)
	setIf(&j.Tags, p.Tags)
	setIf(&j.Location, p.Location)
	setIf(&j.Salary, p.Salary)
	setIf(&j.Type, p.Type)
	setIf(&j.Department, p.Department)
	setIf(&j.Status, p.Status)
	setIf(&j.Order, p.Order)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// UpdateJob applies patch to the job. A changed title or slug re-derives the
// slug, ignoring the job's own current slug during the uniqueness probe.
func (s *Service) UpdateJob(ctx context.Context, id string, patch JobPatch) (*models.Job, error) {
	var saved *models.Job
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		var err error
		saved, err = database.Jobs.Update(ctx, tx, id, func(cur *models.Job) error {
			next := *cur
			patch.apply(&next)
			next = models.NewJob(next)
			next.Title = strings.TrimSpace(next.Title)

			if next.Title != cur.Title || next.Slug != cur.Slug {
				base := slugBase(next.Slug, next.Title)
				if patch.Slug == nil {
					base = slugBase("", next.Title)
				}
				slug, err := s.uniqueSlug(ctx, tx, base, cur.ID)
				if err != nil {
					return err
				}
				next.Slug = slug
			}
			if err := validateStruct(&next); err != nil {
				return err
			}
			*cur = next
			return nil
		})
		if err != nil {
			return duplicate(entityJob, "slug", stringOr(patch.Slug), notFound(entityJob, id, err))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return saved, nil
}

// DeleteJob removes the job together with its candidates (and everything
// they own), its assessments and their responses, and every application to
// it. The cascade is a single transaction.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	var removed struct{ candidates, assessments, applications int }
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if _, err := database.Jobs.Get(ctx, tx, id); err != nil {
			return notFound(entityJob, id, err)
		}

		candidates, err := database.Candidates.Find(ctx, tx, database.Eq(database.ColJobID, id))
		if err != nil {
			return err
		}
		for _, c := range candidates {
			if err := deleteCandidateTx(ctx, tx, c.ID); err != nil {
				return err
			}
		}
		removed.candidates = len(candidates)

		assessments, err := database.Assessments.Find(ctx, tx, database.Eq(database.ColJobID, id))
		if err != nil {
			return err
		}
		for _, a := range assessments {
			if err := deleteAssessmentTx(ctx, tx, a.ID); err != nil {
				return err
			}
		}
		removed.assessments = len(assessments)

		n, err := database.JobApplications.DeleteWhere(ctx, tx, database.Eq(database.ColJobID, id))
		if err != nil {
			return err
		}
		removed.applications = int(n)

		return database.Jobs.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	s.log.Info("job deleted", "id", id,
		"candidates", removed.candidates,
		"assessments", removed.assessments,
		"applications", removed.applications)
	return nil
}

// ReorderJobs swaps the Order values of the jobs holding fromOrder and
// toOrder. If either position is empty nothing changes.
func (s *Service) ReorderJobs(ctx context.Context, fromOrder, toOrder int) error {
	if fromOrder == toOrder {
		return nil
	}
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		from, err := database.Jobs.Find(ctx, tx, database.Eq(database.ColOrder, fromOrder))
		if err != nil {
			return err
		}
		to, err := database.Jobs.Find(ctx, tx, database.Eq(database.ColOrder, toOrder))
		if err != nil {
			return err
		}
		if len(from) == 0 || len(to) == 0 {
			return nil
		}

		for _, j := range from {
			if err := setOrder(ctx, tx, j.ID, toOrder); err != nil {
				return err
			}
		}
		for _, j := range to {
			if err := setOrder(ctx, tx, j.ID, fromOrder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder jobs: %w", err)
	}
	return nil
}

func setOrder(ctx context.Context, tx *database.Tx, id string, order int) error {
	_, err := database.Jobs.Update(ctx, tx, id, func(j *models.Job) error {
		j.Order = order
		return nil
	})
	return err
}

// slugBase picks the slug to probe: the caller's slug when it survives
// normalization, otherwise one derived from the title.
func slugBase(slug, title string) string {
	if base := Slugify(slug); base != "" {
		return base
	}
	return Slugify(title)
}

func stringOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
