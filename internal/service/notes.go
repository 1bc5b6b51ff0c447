package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

var mentionPattern = regexp.MustCompile(`@([\w.-]+)`)

// ExtractMentions returns the distinct @mention handles in content, in order
// of first appearance and without the leading "@".
func ExtractMentions(content string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		handle := strings.TrimRight(m[1], ".-")
		if handle == "" || seen[handle] {
			continue
		}
		seen[handle] = true
		out = append(out, handle)
	}
	return out
}

// CreateNote stores a note on a candidate and logs a note_added event that
// references it.
func (s *Service) CreateNote(ctx context.Context, in models.Note) (*models.Note, error) {
	n := models.NewNote(in)
	n.Content = strings.TrimSpace(n.Content)
	if err := validateStruct(&n); err != nil {
		return nil, err
	}

	err := s.store.Update(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, n.CandidateID); err != nil {
			return err
		}
		if err := database.Notes.Insert(ctx, tx, &n); err != nil {
			return duplicate(entityNote, "id", n.ID, err)
		}
		return appendEvent(ctx, tx, models.TimelineEvent{
			CandidateID: n.CandidateID,
			Type:        models.EventNoteAdded,
			Title:       "Note added",
			Description: preview(n.Content, 80),
			Metadata: map[string]any{
				"noteId":   n.ID,
				"mentions": ExtractMentions(n.Content),
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &n, nil
}

// ListNotes returns a candidate's notes oldest first.
func (s *Service) ListNotes(ctx context.Context, candidateID string) ([]models.Note, error) {
	var notes []models.Note
	err := s.store.View(ctx, func(tx *database.Tx) error {
		if err := requireCandidate(ctx, tx, candidateID); err != nil {
			return err
		}
		var err error
		notes, err = database.Notes.Find(ctx, tx, database.Eq(database.ColCandidateID, candidateID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// UpdateNote replaces the note's content. The timeline is not touched.
func (s *Service) UpdateNote(ctx context.Context, id, content string) (*models.Note, error) {
	var saved *models.Note
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		var err error
		saved, err = database.Notes.Update(ctx, tx, id, func(n *models.Note) error {
			next := *n
			next.Content = strings.TrimSpace(content)
			if err := validateStruct(&next); err != nil {
				return err
			}
			*n = next
			return nil
		})
		return notFound(entityNote, id, err)
	})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return saved, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(tx *database.Tx) error {
		return notFound(entityNote, id, database.Notes.Delete(ctx, tx, id))
	})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
