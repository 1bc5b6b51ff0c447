package models

import "time"

// Job represents an open (or archived) position
type Job struct {
	ID           string         `json:"id"`
	Title        string         `json:"title" validate:"required,max=200"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	Requirements []string       `json:"requirements"`
	Benefits     []string       `json:"benefits"`
	Tags         []string       `json:"tags"`
	Location     string         `json:"location"`
	Salary       string         `json:"salary"` // free text, e.g. "$120k - $150k"
	Type         JobType        `json:"type" validate:"omitempty,enum"`
	Department   string         `json:"department"`
	Status       JobStatus      `json:"status" validate:"omitempty,enum"`
	Order        int            `json:"order" validate:"min=0"` // 1-based display position, 0 means append
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Candidate represents a person moving through the hiring pipeline
type Candidate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name" validate:"required,max=200"`
	Email       string         `json:"email" validate:"required,email"`
	Phone       string         `json:"phone"`
	Stage       Stage          `json:"stage" validate:"omitempty,enum"`
	JobID       string         `json:"job_id"` // primary job the candidate applied for
	CoverLetter string         `json:"cover_letter"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Assessment is a questionnaire attached to a job
type Assessment struct {
	ID          string         `json:"id"`
	JobID       string         `json:"job_id" validate:"required"`
	Title       string         `json:"title" validate:"required,max=200"`
	Description string         `json:"description"`
	Sections    []Section      `json:"sections" validate:"dive"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Section groups questions inside an assessment
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions" validate:"dive"`
}

// Question is a single assessment prompt
type Question struct {
	ID               string            `json:"id"`
	Type             QuestionType      `json:"type" validate:"omitempty,enum"`
	Title            string            `json:"title" validate:"required"`
	Description      string            `json:"description"`
	Required         bool              `json:"required"`
	Options          []string          `json:"options"`
	Validation       Validation        `json:"validation"`
	ConditionalLogic *ConditionalLogic `json:"conditional_logic,omitempty"`
}

// Validation holds the answer constraints of a question. Nil bounds are unset.
type Validation struct {
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// ConditionalLogic shows a question only when another question's answer matches
type ConditionalLogic struct {
	DependsOnQuestionID string            `json:"depends_on_question_id"`
	Operator            ConditionOperator `json:"operator"`
	Value               string            `json:"value"`
}

// TimelineEvent is an append-only audit record for a candidate
type TimelineEvent struct {
	ID          string         `json:"id"`
	CandidateID string         `json:"candidate_id"`
	Type        EventType      `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Note is a free-text comment on a candidate; @mentions are kept as plain text
type Note struct {
	ID          string         `json:"id"`
	CandidateID string         `json:"candidate_id" validate:"required"`
	Content     string         `json:"content" validate:"required"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// AssessmentResponse holds a candidate's answers to one assessment
type AssessmentResponse struct {
	ID           string         `json:"id"`
	CandidateID  string         `json:"candidate_id"`
	AssessmentID string         `json:"assessment_id"`
	Answers      map[string]any `json:"answers"` // keyed by question ID
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// JobApplication links a candidate to a job they applied for
type JobApplication struct {
	ID          string         `json:"id"`
	CandidateID string         `json:"candidate_id"`
	JobID       string         `json:"job_id"`
	JobTitle    string         `json:"job_title"` // snapshot at apply time
	Status      Stage          `json:"status"`
	Notes       string         `json:"notes"`
	AppliedAt   time.Time      `json:"applied_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Extra       map[string]any `json:"extra,omitempty"`
}
