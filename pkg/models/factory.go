package models

import (
	"strings"

	"github.com/google/uuid"
)

// Factories take a partially filled record and return a copy with every
// omitted field defaulted. Zero values count as omitted. An ID is generated
// only when the caller left it empty; timestamps are never set here.

func NewJob(j Job) Job {
	j.ID = idOrNew(j.ID)
	j.Requirements = nonNil(j.Requirements)
	j.Benefits = nonNil(j.Benefits)
	j.Tags = uniqueTags(j.Tags)
	if j.Type == "" {
		j.Type = JobTypeFullTime
	}
	if j.Status == "" {
		j.Status = JobStatusActive
	}
	return j
}

func NewCandidate(c Candidate) Candidate {
	c.ID = idOrNew(c.ID)
	c.Email = strings.TrimSpace(c.Email)
	if c.Stage == "" {
		c.Stage = StageApplied
	}
	return c
}

func NewAssessment(a Assessment) Assessment {
	a.ID = idOrNew(a.ID)
	if a.Sections == nil {
		a.Sections = []Section{}
	}
	for i := range a.Sections {
		a.Sections[i] = NewSection(a.Sections[i])
	}
	return a
}

func NewSection(s Section) Section {
	s.ID = idOrNew(s.ID)
	if s.Questions == nil {
		s.Questions = []Question{}
	}
	for i := range s.Questions {
		s.Questions[i] = NewQuestion(s.Questions[i])
	}
	return s
}

func NewQuestion(q Question) Question {
	q.ID = idOrNew(q.ID)
	if q.Type == "" {
		q.Type = QuestionShortText
	}
	q.Options = nonNil(q.Options)
	return q
}

func NewTimelineEvent(e TimelineEvent) TimelineEvent {
	e.ID = idOrNew(e.ID)
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}
	return e
}

func NewNote(n Note) Note {
	n.ID = idOrNew(n.ID)
	return n
}

func NewAssessmentResponse(r AssessmentResponse) AssessmentResponse {
	r.ID = idOrNew(r.ID)
	if r.Answers == nil {
		r.Answers = map[string]any{}
	}
	return r
}

func NewJobApplication(a JobApplication) JobApplication {
	a.ID = idOrNew(a.ID)
	if a.Status == "" {
		a.Status = StageApplied
	}
	return a
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// uniqueTags drops blank and repeated tags, keeping first-seen order.
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
