package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

// mustAssessment creates a one-question assessment whose question id is "q1".
func mustAssessment(t *testing.T, s *Service, jobID string) *models.Assessment {
	t.Helper()
	a, err := s.CreateAssessment(context.Background(), models.Assessment{
		JobID: jobID,
		Title: "Screening",
		Sections: []models.Section{{
			Title:     "Basics",
			Questions: []models.Question{{ID: "q1", Title: "Can you relocate?", Type: models.QuestionSingleChoice, Options: []string{"yes", "no"}}},
		}},
	})
	require.NoError(t, err)
	return a
}

func screeningAssessment(jobID string) models.Assessment {
	return models.Assessment{
		JobID: jobID,
		Title: "Backend screening",
		Sections: []models.Section{
			{
				Title: "Experience",
				Questions: []models.Question{
					{ID: "years", Title: "Years of Go", Type: models.QuestionNumeric, Required: true,
						Validation: models.Validation{Min: ptr(0.0), Max: ptr(40.0)}},
					{ID: "remote", Title: "Remote?", Type: models.QuestionSingleChoice, Required: true, Options: []string{"yes", "no"}},
					{ID: "city", Title: "Which city?", Type: models.QuestionShortText, Required: true,
						ConditionalLogic: &models.ConditionalLogic{DependsOnQuestionID: "remote", Operator: models.OperatorEquals, Value: "no"}},
				},
			},
			{
				Title: "Skills",
				Questions: []models.Question{
					{ID: "stack", Title: "Stack", Type: models.QuestionMultiChoice, Options: []string{"go", "rust", "sql"}},
					{ID: "why", Title: "Why us?", Type: models.QuestionLongText,
						Validation: models.Validation{MinLength: ptr(5), MaxLength: ptr(200)}},
					{ID: "handle", Title: "GitHub handle", Type: models.QuestionShortText,
						Validation: models.Validation{Pattern: `^[a-z0-9-]+$`}},
				},
			},
		},
	}
}

func TestCreateAssessment(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	job := mustJob(t, s, models.Job{Title: "Backend"})
	a, err := s.CreateAssessment(ctx, screeningAssessment(job.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, a.Sections[0].ID)

	got, err := s.GetAssessmentByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	require.Len(t, got.Sections, 2)
	require.NotNil(t, got.Sections[0].Questions[2].ConditionalLogic)
	assert.Equal(t, "remote", got.Sections[0].Questions[2].ConditionalLogic.DependsOnQuestionID)

	list, err := s.ListAssessments(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.GetAssessmentByJob(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAssessment_Rules(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	job := mustJob(t, s, models.Job{Title: "Backend"})

	tests := []struct {
		name   string
		mutate func(a *models.Assessment)
		want   error
	}{
		{"missing job", func(a *models.Assessment) { a.JobID = "missing" }, ErrNotFound},
		{"missing title", func(a *models.Assessment) { a.Title = "" }, ErrValidation},
		{"self dependency", func(a *models.Assessment) {
			a.Sections[0].Questions[2].ConditionalLogic.DependsOnQuestionID = "city"
		}, ErrValidation},
		{"unknown dependency", func(a *models.Assessment) {
			a.Sections[0].Questions[2].ConditionalLogic.DependsOnQuestionID = "elsewhere"
		}, ErrValidation},
		{"bad operator", func(a *models.Assessment) {
			a.Sections[0].Questions[2].ConditionalLogic.Operator = "greater_than"
		}, ErrValidation},
		{"choice without options", func(a *models.Assessment) { a.Sections[0].Questions[1].Options = nil }, ErrValidation},
		{"duplicate question id", func(a *models.Assessment) { a.Sections[1].Questions[0].ID = "years" }, ErrValidation},
		{"inverted bounds", func(a *models.Assessment) {
			a.Sections[0].Questions[0].Validation = models.Validation{Min: ptr(5.0), Max: ptr(1.0)}
		}, ErrValidation},
		{"bad pattern", func(a *models.Assessment) { a.Sections[1].Questions[2].Validation.Pattern = "([" }, ErrValidation},
		{"unknown question type", func(a *models.Assessment) { a.Sections[1].Questions[0].Type = "slider" }, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := screeningAssessment(job.ID)
			tt.mutate(&a)
			_, err := s.CreateAssessment(ctx, a)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, countWhere(t, s, database.Assessments))
}

func TestUpdateAssessment(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	job := mustJob(t, s, models.Job{Title: "Backend"})
	a, err := s.CreateAssessment(ctx, screeningAssessment(job.ID))
	require.NoError(t, err)

	got, err := s.UpdateAssessment(ctx, a.ID, AssessmentPatch{Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, job.ID, got.JobID)
	assert.Len(t, got.Sections, 2)

	broken := []models.Section{{Questions: []models.Question{{ID: "x", Title: "X",
		ConditionalLogic: &models.ConditionalLogic{DependsOnQuestionID: "x", Operator: models.OperatorEquals}}}}}
	_, err = s.UpdateAssessment(ctx, a.ID, AssessmentPatch{Sections: &broken})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.UpdateAssessment(ctx, "missing", AssessmentPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAssessment_CascadesResponses(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	job := mustJob(t, s, models.Job{Title: "Backend"})
	c := mustCandidate(t, s, models.Candidate{Name: "Lola"})
	a := mustAssessment(t, s, job.ID)

	_, err := s.SubmitAssessmentResponse(ctx, c.ID, a.ID, map[string]any{"q1": "no"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAssessment(ctx, a.ID))
	assert.Zero(t, countWhere(t, s, database.AssessmentResponses, database.Eq(database.ColAssessmentID, a.ID)))
	assert.ErrorIs(t, s.DeleteAssessment(ctx, a.ID), ErrNotFound)
}

func TestSubmitAssessmentResponse(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	job := mustJob(t, s, models.Job{Title: "Backend"})
	c := mustCandidate(t, s, models.Candidate{Name: "Musa"})
	a, err := s.CreateAssessment(ctx, screeningAssessment(job.ID))
	require.NoError(t, err)

	valid := map[string]any{"years": 4.0, "remote": "yes", "stack": []any{"go", "sql"}, "why": "I like the product", "handle": "musa-dev"}

	first, err := s.SubmitAssessmentResponse(ctx, c.ID, a.ID, valid)
	require.NoError(t, err)

	resubmit := map[string]any{"years": 5, "remote": "no", "city": "Abuja"}
	second, err := s.SubmitAssessmentResponse(ctx, c.ID, a.ID, resubmit)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.GetAssessmentResponse(ctx, c.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abuja", got.Answers["city"])
	assert.NotContains(t, got.Answers, "stack")
	assert.Equal(t, 1, countWhere(t, s, database.AssessmentResponses, database.Eq(database.ColCandidateID, c.ID)))

	n := countWhere(t, s, database.TimelineEvents,
		database.Eq(database.ColCandidateID, c.ID),
		database.Eq(database.ColType, string(models.EventAssessmentCompleted)))
	assert.Equal(t, 2, n)
}

func TestSubmitAssessmentResponse_Rejects(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	job := mustJob(t, s, models.Job{Title: "Backend"})
	c := mustCandidate(t, s, models.Candidate{Name: "Ngozi"})
	a, err := s.CreateAssessment(ctx, screeningAssessment(job.ID))
	require.NoError(t, err)

	base := func(extra map[string]any) map[string]any {
		m := map[string]any{"years": 3, "remote": "yes"}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}

	tests := []struct {
		name    string
		answers map[string]any
		field   string
	}{
		{"missing required", map[string]any{"remote": "yes"}, "answers.years"},
		{"visible conditional required", base(map[string]any{"remote": "no"}), "answers.city"},
		{"out of range", base(map[string]any{"years": 99}), "answers.years"},
		{"not a number", base(map[string]any{"years": "lots"}), "answers.years"},
		{"not an option", base(map[string]any{"remote": "maybe"}), "answers.remote"},
		{"bad multi option", base(map[string]any{"stack": []any{"go", "cobol"}}), "answers.stack"},
		{"too short", base(map[string]any{"why": "hey"}), "answers.why"},
		{"pattern", base(map[string]any{"handle": "Not Valid"}), "answers.handle"},
		{"unknown question", base(map[string]any{"nope": 1}), "answers.nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SubmitAssessmentResponse(ctx, c.ID, a.ID, tt.answers)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err = s.GetAssessmentResponse(ctx, c.ID, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SubmitAssessmentResponse(ctx, "missing", a.ID, base(nil))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SubmitAssessmentResponse(ctx, c.ID, "missing", base(nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVisible(t *testing.T) {
	q := func(op models.ConditionOperator, v string) models.Question {
		return models.Question{ID: "b", ConditionalLogic: &models.ConditionalLogic{DependsOnQuestionID: "a", Operator: op, Value: v}}
	}

	tests := []struct {
		name    string
		q       models.Question
		answers map[string]any
		want    bool
	}{
		{"no logic", models.Question{ID: "b"}, nil, true},
		{"equals match", q(models.OperatorEquals, "yes"), map[string]any{"a": "yes"}, true},
		{"equals miss", q(models.OperatorEquals, "yes"), map[string]any{"a": "no"}, false},
		{"equals unanswered", q(models.OperatorEquals, "yes"), map[string]any{}, false},
		{"not equals", q(models.OperatorNotEquals, "yes"), map[string]any{"a": "no"}, true},
		{"not equals unanswered", q(models.OperatorNotEquals, "yes"), map[string]any{}, true},
		{"contains text", q(models.OperatorContains, "go"), map[string]any{"a": "golang"}, true},
		{"contains list", q(models.OperatorContains, "go"), map[string]any{"a": []any{"rust", "go"}}, true},
		{"contains list miss", q(models.OperatorContains, "go"), map[string]any{"a": []string{"golang"}}, false},
		{"numeric equals", q(models.OperatorEquals, "3"), map[string]any{"a": 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.q, tt.answers))
		})
	}
}
