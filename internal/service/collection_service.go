package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/cache"
	dom "github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/domain"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/repo"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("entry already in collection")
)

// CollectionService implements the per-user collection operations. The
// acting user is always the verified claim's ID passed by the handler;
// ownership is enforced in every repository query, not just here.
type CollectionService struct {
	repo  repo.CollectionRepo
	cache *cache.CollectionCache
	sf    singleflight.Group
}

// NewCollectionService creates a CollectionService. If c is nil, caching is disabled.
func NewCollectionService(r repo.CollectionRepo, c *cache.CollectionCache) *CollectionService {
	return &CollectionService{repo: r, cache: c}
}

// List returns the user's entries, newest first.
func (s *CollectionService) List(ctx context.Context, userID int64) ([]dom.CollectionEntry, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.CollectionEntry), nil
	}
	return s.repo.ListByUser(ctx, userID)
}

// Add persists a new entry. Status defaults when absent or blank; optional
// fields stay nil. A duplicate (user, external id) pair, concurrent or not,
// surfaces as ErrDuplicateEntry.
func (s *CollectionService) Add(ctx context.Context, userID int64, externalID, title string, number *int, imageURL *string, status *string) (dom.CollectionEntry, error) {
	externalID = strings.TrimSpace(externalID)
	title = strings.TrimSpace(title)
	if externalID == "" || title == "" {
		return dom.CollectionEntry{}, ErrMissingFields
	}
	st := dom.DefaultStatus
	if status != nil && strings.TrimSpace(*status) != "" {
		st = strings.TrimSpace(*status)
	}
	e, err := s.repo.Create(ctx, dom.CollectionEntry{
		UserID:     userID,
		ExternalID: externalID,
		Title:      title,
		Number:     number,
		ImageURL:   imageURL,
		Status:     st,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.CollectionEntry{}, ErrDuplicateEntry
		}
		return dom.CollectionEntry{}, err
	}
	s.invalidateCache(ctx, userID)
	return e, nil
}

// Remove deletes the user's entry. Zero affected rows means the entry never
// existed or belongs to someone else; both come back as ErrNotFound.
func (s *CollectionService) Remove(ctx context.Context, userID int64, externalID string) error {
	affected, err := s.repo.Delete(ctx, userID, externalID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// Update replaces status and note on the user's entry. This is not a patch:
// an absent status falls back to the default and an absent note clears the
// stored one.
func (s *CollectionService) Update(ctx context.Context, userID int64, externalID string, status *string, note *string) error {
	st := dom.DefaultStatus
	if status != nil && strings.TrimSpace(*status) != "" {
		st = strings.TrimSpace(*status)
	}
	affected, err := s.repo.UpdateStatusNote(ctx, userID, externalID, st, note)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// Check reports whether the entry is in the user's collection, with the row
// when present.
func (s *CollectionService) Check(ctx context.Context, userID int64, externalID string) (dom.CollectionEntry, bool, error) {
	e, err := s.repo.GetByExternalID(ctx, userID, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.CollectionEntry{}, false, nil
		}
		return dom.CollectionEntry{}, false, err
	}
	return e, true, nil
}

func (s *CollectionService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
