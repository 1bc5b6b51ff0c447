package models

import "time"

// Storage hooks. The storage engine stamps timestamps through these methods;
// nothing else in the codebase writes CreatedAt/UpdatedAt/AppliedAt.

func (j *Job) GetID() string            { return j.ID }
func (j *Job) SetID(id string)          { j.ID = id }
func (j *Job) StampCreated(t time.Time) { j.CreatedAt, j.UpdatedAt = t, t }
func (j *Job) StampUpdated(t time.Time) { j.UpdatedAt = t }

func (c *Candidate) GetID() string            { return c.ID }
func (c *Candidate) SetID(id string)          { c.ID = id }
func (c *Candidate) StampCreated(t time.Time) { c.CreatedAt, c.UpdatedAt = t, t }
func (c *Candidate) StampUpdated(t time.Time) { c.UpdatedAt = t }

func (a *Assessment) GetID() string            { return a.ID }
func (a *Assessment) SetID(id string)          { a.ID = id }
func (a *Assessment) StampCreated(t time.Time) { a.CreatedAt, a.UpdatedAt = t, t }
func (a *Assessment) StampUpdated(t time.Time) { a.UpdatedAt = t }

// TimelineEvent is append-only and has no StampUpdated.
func (e *TimelineEvent) GetID() string            { return e.ID }
func (e *TimelineEvent) SetID(id string)          { e.ID = id }
func (e *TimelineEvent) StampCreated(t time.Time) { e.CreatedAt = t }

func (n *Note) GetID() string            { return n.ID }
func (n *Note) SetID(id string)          { n.ID = id }
func (n *Note) StampCreated(t time.Time) { n.CreatedAt, n.UpdatedAt = t, t }
func (n *Note) StampUpdated(t time.Time) { n.UpdatedAt = t }

func (r *AssessmentResponse) GetID() string            { return r.ID }
func (r *AssessmentResponse) SetID(id string)          { r.ID = id }
func (r *AssessmentResponse) StampCreated(t time.Time) { r.CreatedAt, r.UpdatedAt = t, t }
func (r *AssessmentResponse) StampUpdated(t time.Time) { r.UpdatedAt = t }

func (a *JobApplication) GetID() string            { return a.ID }
func (a *JobApplication) SetID(id string)          { a.ID = id }
func (a *JobApplication) StampCreated(t time.Time) { a.AppliedAt, a.UpdatedAt = t, t }
func (a *JobApplication) StampUpdated(t time.Time) { a.UpdatedAt = t }
