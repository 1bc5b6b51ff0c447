package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/khrees2412/talentflow/internal/database"
)

const fallbackSlug = "job"

// Slugify lowercases s, folds accents to ASCII, drops punctuation and joins
// words with single hyphens: "Senior  Node.js Engineer!" -> "senior-nodejs-engineer".
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			pending = true
		}
	}
	return b.String()
}

// uniqueSlug probes base, base-1, base-2, ... and returns the first slug no
// other job holds. excludeID is ignored during the probe so a job can keep
// its own slug. Must run inside the write transaction that stores the slug.
func (s *Service) uniqueSlug(ctx context.Context, tx *database.Tx, base, excludeID string) (string, error) {
	if base == "" {
		base = fallbackSlug
	}
	for i := 0; i <= s.maxSlugAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		holders, err := database.Jobs.Find(ctx, tx, database.Eq(database.ColSlug, candidate))
		if err != nil {
			return "", err
		}
		taken := false
		for _, h := range holders {
			if h.ID != excludeID {
				taken = true
				break
			}
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", &DuplicateError{Entity: entityJob, Field: "slug", Value: base}
}
