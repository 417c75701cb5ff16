package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/crguezl/tinyclonec/internal/id"
)

const (
	maxURLLength = 4096
	recentLimit  = 10
)

// User-visible validation messages, one per rule.
const (
	msgURLMissing  = "You must specify a URL."
	msgURLTooLong  = "That URL is too long."
	msgURLBadStart = "The URL must start with http://, https://, or ftp://."
)

// Scheme is matched case-insensitively; the remainder only has to be
// non-empty.
var urlRe = regexp.MustCompile(`^(?i:https?|ftp)://.+`)

// Service implements the lookup-or-create and redirect logic over a Store.
type Service struct {
	store   Store
	nowFunc func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store:   store,
		nowFunc: time.Now,
	}
}

// Shorten returns the link for rawURL, creating one first if no link with
// that url exists. The boolean reports whether this call created it.
// Invalid input is rejected with a *ValidationError and nothing is
// persisted.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*Link, bool, error) {
	u := strings.TrimSpace(rawURL)
	if msgs := validateURL(u); len(msgs) > 0 {
		return nil, false, &ValidationError{Messages: msgs}
	}

	if l, err := s.store.FindByURL(ctx, u); err == nil {
		return l, false, nil
	} else if !IsNotFound(err) {
		return nil, false, fmt.Errorf("find by url: %w", err)
	}

	l := &Link{URL: u, ViewCount: 0, CreatedAt: s.nowFunc().UTC()}
	err := s.store.Create(ctx, l)
	if err == nil {
		return l, true, nil
	}
	if IsDuplicateURL(err) {
		// Lost the insert race; the winning row is the link.
		winner, ferr := s.store.FindByURL(ctx, u)
		if ferr != nil {
			return nil, false, fmt.Errorf("refetch after duplicate: %w", ferr)
		}
		return winner, false, nil
	}
	return nil, false, fmt.Errorf("create link: %w", err)
}

// Visit resolves code to its link and records the view. The counter moves
// exactly once per successful call, before the caller issues the
// redirect. Malformed and unassigned codes both come back as ErrNotFound.
func (s *Service) Visit(ctx context.Context, code string) (*Link, error) {
	l, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.store.RecordView(ctx, l.ID); err != nil {
		return nil, fmt.Errorf("record view: %w", err)
	}
	return l, nil
}

// Metadata resolves code to its link without touching the view counter.
func (s *Service) Metadata(ctx context.Context, code string) (*Link, error) {
	return s.lookup(ctx, code)
}

// Recent returns the newest links for display.
func (s *Service) Recent(ctx context.Context) ([]Link, error) {
	return s.store.Recent(ctx, recentLimit)
}

func (s *Service) lookup(ctx context.Context, code string) (*Link, error) {
	n, err := id.Decode(code)
	if err != nil {
		// A code that does not decode was never issued.
		return nil, ErrNotFound
	}
	l, err := s.store.FindByID(ctx, n)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by identifier: %w", err)
	}
	return l, nil
}

// validateURL returns the user-visible messages for every violated rule.
// An empty value reports only the missing-url message.
func validateURL(u string) []string {
	if u == "" {
		return []string{msgURLMissing}
	}
	var msgs []string
	if len(u) > maxURLLength {
		msgs = append(msgs, msgURLTooLong)
	}
	if !urlRe.MatchString(u) {
		msgs = append(msgs, msgURLBadStart)
	}
	return msgs
}
