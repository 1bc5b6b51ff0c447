package models

// Stage is a position in the hiring pipeline. Candidate.Stage and
// JobApplication.Status share it but are tracked independently.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

func (s Stage) Valid() bool {
	switch s {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

// Interviewing reports whether the stage counts as an active interview.
func (s Stage) Interviewing() bool {
	switch s {
	case StageScreen, StageTech, StageOffer:
		return true
	}
	return false
}

// JobStatus is the publication state of a job
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

// JobType is the employment type of a job
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// QuestionType is the answer format of an assessment question
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionShortText    QuestionType = "short_text"
	QuestionLongText     QuestionType = "long_text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file_upload"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumeric, QuestionFileUpload:
		return true
	}
	return false
}

// HasOptions reports whether answers are picked from Question.Options.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// ConditionOperator compares a dependency's answer with ConditionalLogic.Value
type ConditionOperator string

const (
	OperatorEquals    ConditionOperator = "equals"
	OperatorNotEquals ConditionOperator = "not_equals"
	OperatorContains  ConditionOperator = "contains"
)

func (o ConditionOperator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains:
		return true
	}
	return false
}

// EventType classifies timeline events
type EventType string

const (
	EventStageChange         EventType = "stage_change"
	EventNoteAdded           EventType = "note_added"
	EventAssessmentCompleted EventType = "assessment_completed"
	EventJobApplication      EventType = "job_application"
	EventStatusChange        EventType = "status_change"
)

func (t EventType) Valid() bool {
	switch t {
	case EventStageChange, EventNoteAdded, EventAssessmentCompleted, EventJobApplication, EventStatusChange:
		return true
	}
	return false
}
