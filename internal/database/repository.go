package database

import "github.com/khrees2412/talentflow/pkg/models"

// Index column names shared by the tables below.
const (
	ColStatus       = "status"
	ColSlug         = "slug"
	ColOrder        = "order_index"
	ColStage        = "stage"
	ColJobID        = "job_id"
	ColEmail        = "email"
	ColCandidateID  = "candidate_id"
	ColAssessmentID = "assessment_id"
	ColType         = "type"
)

// Job tables

var Jobs = NewTable[models.Job, *models.Job]("jobs",
	On(ColStatus, func(j *models.Job) any { return string(j.Status) }),
	On(ColSlug, func(j *models.Job) any { return j.Slug }),
	On(ColOrder, func(j *models.Job) any { return j.Order }),
)

var Assessments = NewTable[models.Assessment, *models.Assessment]("assessments",
	On(ColJobID, func(a *models.Assessment) any { return a.JobID }),
)

// Candidate tables

var Candidates = NewTable[models.Candidate, *models.Candidate]("candidates",
	On(ColStage, func(c *models.Candidate) any { return string(c.Stage) }),
	On(ColJobID, func(c *models.Candidate) any { return c.JobID }),
	On(ColEmail, func(c *models.Candidate) any { return c.Email }),
)

var TimelineEvents = NewTable[models.TimelineEvent, *models.TimelineEvent]("timeline_events",
	On(ColCandidateID, func(e *models.TimelineEvent) any { return e.CandidateID }),
	On(ColType, func(e *models.TimelineEvent) any { return string(e.Type) }),
)

var Notes = NewTable[models.Note, *models.Note]("notes",
	On(ColCandidateID, func(n *models.Note) any { return n.CandidateID }),
)

var AssessmentResponses = NewTable[models.AssessmentResponse, *models.AssessmentResponse]("assessment_responses",
	On(ColCandidateID, func(r *models.AssessmentResponse) any { return r.CandidateID }),
	On(ColAssessmentID, func(r *models.AssessmentResponse) any { return r.AssessmentID }),
)

var JobApplications = NewTable[models.JobApplication, *models.JobApplication]("job_applications",
	On(ColCandidateID, func(a *models.JobApplication) any { return a.CandidateID }),
	On(ColJobID, func(a *models.JobApplication) any { return a.JobID }),
	On(ColStatus, func(a *models.JobApplication) any { return string(a.Status) }),
)
