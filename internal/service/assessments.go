package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

// ListAssessments returns every assessment, or only those of jobID when it
// is not empty.
func (s *Service) ListAssessments(ctx context.Context, jobID string) ([]models.Assessment, error) {
	var out []models.Assessment
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var conds []database.Cond
		if jobID != "" {
			conds = append(conds, database.Eq(database.ColJobID, jobID))
		}
		var err error
		out, err = database.Assessments.Find(ctx, tx, conds...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}

func (s *Service) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	var a *models.Assessment
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		a, err = database.Assessments.Get(ctx, tx, id)
		return notFound(entityAssessment, id, err)
	})
	return a, err
}

// GetAssessmentByJob returns the first assessment attached to jobID.
func (s *Service) GetAssessmentByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	var a *models.Assessment
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		a, err = database.Assessments.First(ctx, tx, database.Eq(database.ColJobID, jobID))
		return notFound(entityAssessment, "job:"+jobID, err)
	})
	return a, err
}

// CreateAssessment stores an assessment for an existing job.
func (s *Service) CreateAssessment(ctx context.Context, in models.Assessment) (*models.Assessment, error) {
	a := models.NewAssessment(in)
	if err := checkAssessment(&a); err != nil {
		return nil, err
	}

	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if err := requireJob(ctx, tx, a.JobID); err != nil {
			return err
		}
		return duplicate(entityAssessment, "id", a.ID, database.Assessments.Insert(ctx, tx, &a))
	})
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	s.log.Debug("assessment created", "id", a.ID, "job_id", a.JobID, "sections", len(a.Sections))
	return &a, nil
}

// AssessmentPatch is a partial update. Sections, when set, replace the
// whole list. The owning job cannot be changed.
type AssessmentPatch struct {
	Title       *string
	Description *string
	Sections    *[]models.Section
}

func (s *Service) UpdateAssessment(ctx context.Context, id string, patch AssessmentPatch) (*models.Assessment, error) {
	var saved *models.Assessment
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		var err error
		saved, err = database.Assessments.Update(ctx, tx, id, func(cur *models.Assessment) error {
			next := *cur
			setIf(&next.Title, patch.Title)
			setIf(&next.Description, patch.Description)
			setIf(&next.Sections, patch.Sections)
			next = models.NewAssessment(next)
			if err := checkAssessment(&next); err != nil {
				return err
			}
			*cur = next
			return nil
		})
		return notFound(entityAssessment, id, err)
	})
	if err != nil {
		return nil, fmt.Errorf("update assessment: %w", err)
	}
	return saved, nil
}

// DeleteAssessment removes the assessment and every response to it.
func (s *Service) DeleteAssessment(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if _, err := database.Assessments.Get(ctx, tx, id); err != nil {
			return notFound(entityAssessment, id, err)
		}
		return deleteAssessmentTx(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}

func deleteAssessmentTx(ctx context.Context, tx *database.Tx, id string) error {
	if _, err := database.AssessmentResponses.DeleteWhere(ctx, tx, database.Eq(database.ColAssessmentID, id)); err != nil {
		return err
	}
	return database.Assessments.Delete(ctx, tx, id)
}

// checkAssessment runs the struct tags and then the cross-question rules:
// unique question ids, options on choice questions, sane bounds, and
// conditional logic that points at another question of the same assessment.
func checkAssessment(a *models.Assessment) error {
	if err := validateStruct(a); err != nil {
		return err
	}

	ids := map[string]bool{}
	for si, sec := range a.Sections {
		for qi, q := range sec.Questions {
			field := fmt.Sprintf("sections[%d].questions[%d]", si, qi)
			if ids[q.ID] {
				return &ValidationError{Field: field + ".id", Reason: fmt.Sprintf("duplicate question id %q", q.ID)}
			}
			ids[q.ID] = true

			if q.Type.HasOptions() && len(q.Options) == 0 {
				return &ValidationError{Field: field + ".options", Reason: "choice question needs options"}
			}
			if err := checkBounds(field+".validation", q.Validation); err != nil {
				return err
			}
		}
	}

	for si, sec := range a.Sections {
		for qi, q := range sec.Questions {
			cl := q.ConditionalLogic
			if cl == nil {
				continue
			}
			field := fmt.Sprintf("sections[%d].questions[%d].conditional_logic", si, qi)
			switch {
			case cl.DependsOnQuestionID == q.ID:
				return &ValidationError{Field: field, Reason: "question cannot depend on itself"}
			case !ids[cl.DependsOnQuestionID]:
				return &ValidationError{Field: field, Reason: fmt.Sprintf("unknown question %q", cl.DependsOnQuestionID)}
			case !cl.Operator.Valid():
				return &ValidationError{Field: field + ".operator", Reason: fmt.Sprintf("unknown value %q", cl.Operator)}
			}
		}
	}
	return nil
}

func checkBounds(field string, v models.Validation) error {
	if v.MinLength != nil && *v.MinLength < 0 {
		return &ValidationError{Field: field + ".min_length", Reason: "min=0"}
	}
	if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
		return &ValidationError{Field: field, Reason: "min_length exceeds max_length"}
	}
	if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
		return &ValidationError{Field: field, Reason: "min exceeds max"}
	}
	if v.Pattern != "" {
		if _, err := regexp.Compile(v.Pattern); err != nil {
			return &ValidationError{Field: field + ".pattern", Reason: err.Error()}
		}
	}
	return nil
}

// SubmitAssessmentResponse checks answers against the assessment and stores
// them. A second submission for the same candidate and assessment replaces
// the earlier answers. Every submission logs an assessment_completed event.
func (s *Service) SubmitAssessmentResponse(ctx context.Context, candidateID, assessmentID string, answers map[string]any) (*models.AssessmentResponse, error) {
	if answers == nil {
		answers = map[string]any{}
	}

	var saved *models.AssessmentResponse
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, candidateID); err != nil {
			return err
		}
		a, err := database.Assessments.Get(ctx, tx, assessmentID)
		if err != nil {
			return notFound(entityAssessment, assessmentID, err)
		}
		if err := checkAnswers(a, answers); err != nil {
			return err
		}

		pair := []database.Cond{
			database.Eq(database.ColCandidateID, candidateID),
			database.Eq(database.ColAssessmentID, assessmentID),
		}
		prev, err := database.AssessmentResponses.First(ctx, tx, pair...)
		switch {
		case err == nil:
			saved, err = database.AssessmentResponses.Update(ctx, tx, prev.ID, func(r *models.AssessmentResponse) error {
				r.Answers = answers
				return nil
			})
			if err != nil {
				return err
			}
		case errors.Is(err, database.ErrNotFound):
			r := models.NewAssessmentResponse(models.AssessmentResponse{
				CandidateID:  candidateID,
				AssessmentID: assessmentID,
				Answers:      answers,
			})
			if err := database.AssessmentResponses.Insert(ctx, tx, &r); err != nil {
				return duplicate(entityResponse, "candidate_id,assessment_id", candidateID+","+assessmentID, err)
			}
			saved = &r
		default:
			return err
		}

		return appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: candidateID,
			Type:        models.EventAssessmentCompleted,
			Title:       "Assessment Completed",
			Description: a.Title,
			Metadata: map[string]any{
				"assessmentId": assessmentID,
				"responseId":   saved.ID,
				"answered":     len(saved.Answers),
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("submit assessment response: %w", err)
	}
	return saved, nil
}

func (s *Service) GetAssessmentResponse(ctx context.Context, candidateID, assessmentID string) (*models.AssessmentResponse, error) {
	var r *models.AssessmentResponse
	err := s.store.View(ctx, func(tx *database.Tx) error {
		var err error
		r, err = database.AssessmentResponses.First(ctx, tx,
			database.Eq(database.ColCandidateID, candidateID),
			database.Eq(database.ColAssessmentID, assessmentID))
		return notFound(entityResponse, candidateID+"/"+assessmentID, err)
	})
	return r, err
}

// checkAnswers validates answers against the questions of a. Hidden
// questions are neither required nor checked.
func checkAnswers(a *models.Assessment, answers map[string]any) error {
	questions := map[string]models.Question{}
	for _, sec := range a.Sections {
		for _, q := range sec.Questions {
			questions[q.ID] = q
		}
	}
	for id := range answers {
		if _, ok := questions[id]; !ok {
			return &ValidationError{Field: "answers." + id, Reason: "unknown question"}
		}
	}

	for _, sec := range a.Sections {
		for _, q := range sec.Questions {
			if !Visible(q, answers) {
				continue
			}
			v, ok := answers[q.ID]
			if !ok || blank(v) {
				if q.Required {
					return &ValidationError{Field: "answers." + q.ID, Reason: "required"}
				}
				continue
			}
			if reason := checkAnswer(q, v); reason != "" {
				return &ValidationError{Field: "answers." + q.ID, Reason: reason}
			}
		}
	}
	return nil
}

func checkAnswer(q models.Question, v any) string {
	rules := q.Validation
	switch q.Type {
	case models.QuestionNumeric:
		n, ok := asNumber(v)
		if !ok {
			return "must be a number"
		}
		if rules.Min != nil && n < *rules.Min {
			return fmt.Sprintf("min=%g", *rules.Min)
		}
		if rules.Max != nil && n > *rules.Max {
			return fmt.Sprintf("max=%g", *rules.Max)
		}
	case models.QuestionSingleChoice:
		s, ok := v.(string)
		if !ok || !slices.Contains(q.Options, s) {
			return fmt.Sprintf("%v is not an option", v)
		}
	case models.QuestionMultiChoice:
		picked, ok := asStrings(v)
		if !ok {
			return "must be a list of options"
		}
		for _, p := range picked {
			if !slices.Contains(q.Options, p) {
				return fmt.Sprintf("%q is not an option", p)
			}
		}
	default:
		s, ok := v.(string)
		if !ok {
			return "must be text"
		}
		n := utf8.RuneCountInString(s)
		if rules.MinLength != nil && n < *rules.MinLength {
			return fmt.Sprintf("min_length=%d", *rules.MinLength)
		}
		if rules.MaxLength != nil && n > *rules.MaxLength {
			return fmt.Sprintf("max_length=%d", *rules.MaxLength)
		}
		if rules.Pattern != "" {
			if re, err := regexp.Compile(rules.Pattern); err == nil && !re.MatchString(s) {
				return "does not match pattern"
			}
		}
	}
	return ""
}

// Visible reports whether q is shown given the answers so far.
func Visible(q models.Question, answers map[string]any) bool {
	cl := q.ConditionalLogic
	if cl == nil {
		return true
	}
	got, ok := answers[cl.DependsOnQuestionID]
	if !ok {
		return cl.Operator == models.OperatorNotEquals
	}

	values, isList := asStrings(got)
	if !isList {
		values = []string{fmt.Sprint(got)}
	}
	switch cl.Operator {
	case models.OperatorEquals:
		return !isList && values[0] == cl.Value
	case models.OperatorNotEquals:
		return isList || values[0] != cl.Value
	case models.OperatorContains:
		if isList {
			return slices.Contains(values, cl.Value)
		}
		return strings.Contains(values[0], cl.Value)
	}
	return false
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
