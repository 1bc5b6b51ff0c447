// Package seed builds the initial dataset and loads it through the record
// service when the store is empty.
package seed

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

// Options sizes the generated dataset.
type Options struct {
	Jobs        int
	Candidates  int
	Assessments int
	Seed        uint64
}

func DefaultOptions() Options {
	return Options{Jobs: 25, Candidates: 1000, Assessments: 3, Seed: 42}
}

// Application is a planned job application. Status other than applied is
// reached through a status update after applying.
type Application struct {
	CandidateID string
	JobID       string
	Status      models.Stage
}

// Dataset is everything the seeder will create, in dependency order.
type Dataset struct {
	Jobs         []models.Job
	Candidates   []models.Candidate
	Assessments  []models.Assessment
	Applications []Application
}

// Generator produces the same Dataset for the same seed.
type Generator struct {
	rng *rand.Rand
	src *rand.ChaCha8
}

func NewGenerator(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{rng: rand.New(src), src: src}
}

func (g *Generator) Generate(opts Options) Dataset {
	var ds Dataset

	for i := range opts.Jobs {
		ds.Jobs = append(ds.Jobs, g.job(i))
	}
	for range opts.Candidates {
		ds.Candidates = append(ds.Candidates, g.candidate(ds.Jobs))
	}
	for i := range min(opts.Assessments, len(ds.Jobs)) {
		ds.Assessments = append(ds.Assessments, g.assessment(ds.Jobs[i]))
	}
	ds.Applications = g.applications(ds.Candidates, ds.Jobs)
	return ds
}

func (g *Generator) id() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails.
		panic(fmt.Sprintf("seed: generate id: %v", err))
	}
	return id.String()
}

func (g *Generator) job(i int) models.Job {
	title := jobTitles[i%len(jobTitles)]
	if i >= len(jobTitles) {
		title = fmt.Sprintf("%s %d", title, i/len(jobTitles)+1)
	}
	status := models.JobStatusActive
	if g.rng.IntN(10) < 2 {
		status = models.JobStatusArchived
	}
	return models.Job{
		ID:           g.id(),
		Title:        title,
		Description:  fmt.Sprintf("Join our %s team as a %s and help us build the future of hiring.", strings.ToLower(pick(g, departments)), title),
		Requirements: g.sample(requirementPool, 3, 5),
		Benefits:     g.sample(benefitPool, 2, 4),
		Tags:         g.sample(tagPool, 2, 4),
		Location:     pick(g, locations),
		Salary:       pick(g, salaryBands),
		Type:         pick(g, models.JobTypes),
		Department:   pick(g, departments),
		Status:       status,
		Order:        i + 1,
	}
}

func (g *Generator) candidate(jobs []models.Job) models.Candidate {
	first, last := pick(g, firstNames), pick(g, lastNames)
	local := service.Slugify(first + " " + last)
	c := models.Candidate{
		ID:          g.id(),
		Name:        first + " " + last,
		Email:       fmt.Sprintf("%s.%d@%s", local, g.rng.IntN(1000), pick(g, emailDomains)),
		Phone:       fmt.Sprintf("+1 555 %03d %04d", g.rng.IntN(1000), g.rng.IntN(10000)),
		Stage:       pick(g, models.Stages),
		CoverLetter: pick(g, coverLetterOpeners),
	}
	if len(jobs) > 0 {
		c.JobID = jobs[g.rng.IntN(len(jobs))].ID
	}
	return c
}

func (g *Generator) assessment(job models.Job) models.Assessment {
	a := models.Assessment{
		ID:          g.id(),
		JobID:       job.ID,
		Title:       job.Title + " Assessment",
		Description: "A short questionnaire to help us get to know you.",
	}

	perm := g.rng.Perm(len(questionTemplates))
	next := 0
	for s := range 2 + g.rng.IntN(2) {
		sec := models.Section{ID: g.id(), Title: sectionTitles[s%len(sectionTitles)]}
		for range 2 + g.rng.IntN(2) {
			if next == len(perm) {
				break
			}
			q := questionTemplates[perm[next]]
			next++
			q.ID = g.id()
			q.Options = slices.Clone(q.Options)
			sec.Questions = append(sec.Questions, q)
		}
		a.Sections = append(a.Sections, sec)
	}
	addFollowUp(g, &a)
	return a
}

// addFollowUp appends a question shown only when the first single choice
// question is answered with its first option.
func addFollowUp(g *Generator, a *models.Assessment) {
	for _, sec := range a.Sections {
		for _, q := range sec.Questions {
			if q.Type != models.QuestionSingleChoice {
				continue
			}
			last := &a.Sections[len(a.Sections)-1]
			last.Questions = append(last.Questions, models.Question{
				ID:       g.id(),
				Type:     models.QuestionLongText,
				Title:    fmt.Sprintf("You answered %q to %q. Tell us more.", q.Options[0], q.Title),
				Required: true,
				ConditionalLogic: &models.ConditionalLogic{
					DependsOnQuestionID: q.ID,
					Operator:            models.OperatorEquals,
					Value:               q.Options[0],
				},
			})
			return
		}
	}
}

// applications plans one application per candidate to their primary job,
// plus up to two more to other jobs.
func (g *Generator) applications(cands []models.Candidate, jobs []models.Job) []Application {
	if len(jobs) == 0 {
		return nil
	}
	var out []Application
	for _, c := range cands {
		applied := map[string]bool{}
		targets := []string{}
		if c.JobID != "" {
			targets = append(targets, c.JobID)
		}
		for range g.rng.IntN(3) {
			targets = append(targets, jobs[g.rng.IntN(len(jobs))].ID)
		}
		for _, jobID := range targets {
			if applied[jobID] {
				continue
			}
			applied[jobID] = true
			out = append(out, Application{CandidateID: c.ID, JobID: jobID, Status: pick(g, models.Stages)})
		}
	}
	return out
}

func pick[T any](g *Generator, from []T) T {
	return from[g.rng.IntN(len(from))]
}

// sample returns between lo and hi distinct elements of from, in random order.
func (g *Generator) sample(from []string, lo, hi int) []string {
	n := min(lo+g.rng.IntN(hi-lo+1), len(from))
	out := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}
