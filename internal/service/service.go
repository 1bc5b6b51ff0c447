// Package service is the only entry point for reading and writing hiring
// records. It owns slug generation, referential cascades, timeline logging
// and derived summaries. Every multi-step invariant runs inside a single
// storage transaction.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/pkg/models"
)

const (
	DefaultPageSize        = 10
	DefaultMaxSlugAttempts = 1000
)

// Service coordinates all record operations on top of a Store.
type Service struct {
	store           *database.Store
	log             *slog.Logger
	defaultPageSize int
	maxSlugAttempts int
}

// Option configures a Service
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDefaultPageSize sets the page size used when a filter asks for a page
// without giving a size.
func WithDefaultPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// WithMaxSlugAttempts bounds the numeric suffix search for unique slugs.
func WithMaxSlugAttempts(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSlugAttempts = n
		}
	}
}

// New creates a Service. The store stays owned by the caller.
func New(store *database.Store, opts ...Option) *Service {
	s := &Service{
		store:           store,
		log:             slog.Default(),
		defaultPageSize: DefaultPageSize,
		maxSlugAttempts: DefaultMaxSlugAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page is a slice of results plus pagination info. When the caller did not
// ask for pagination, Paginated is false and Data holds every match.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
	Paginated  bool `json:"paginated"`
}

// PageRequest asks for one page of results. Zero values mean "not set";
// a request with neither field set returns every match.
type PageRequest struct {
	Page     int
	PageSize int
}

func (r PageRequest) wanted() bool {
	return r.Page > 0 || r.PageSize > 0
}

// paginate slices items according to req. Without a request the envelope
// still carries totals, with the whole result as a single page.
func paginate[T any](items []T, req PageRequest, defaultSize int) Page[T] {
	total := len(items)
	if !req.wanted() {
		p := Page[T]{Data: items, Page: 1, PageSize: total, Total: total}
		if total > 0 {
			p.TotalPages = 1
		}
		return p
	}

	page, size := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	start := min((page-1)*size, total)
	end := min(start+size, total)
	return Page[T]{
		Data:       items[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
		HasMore:    end < total,
		Paginated:  true,
	}
}

// appendEvent records a timeline event inside tx.
func appendEvent(ctx context.Context, tx *database.Tx, e models.TimelineEvent) error {
	ev := models.NewTimelineEvent(e)
	if err := database.TimelineEvents.Insert(ctx, tx, &ev); err != nil {
		return fmt.Errorf("append %s event: %w", e.Type, err)
	}
	return nil
}

var titleCase = cases.Title(language.English)

// StageLabel renders a stage for humans, e.g. "tech" -> "Tech".
func StageLabel(s models.Stage) string {
	return titleCase.String(string(s))
}
