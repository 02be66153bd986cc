package service

import (
	"context"
	"sort"
	"testing"
	"time"

	dom "github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type entryKey struct {
	userID     int64
	externalID string
}

// fakeCollectionRepo is an in-memory CollectionRepo keyed by
// (user, external id), matching the unique constraint.
type fakeCollectionRepo struct {
	nextID  int64
	entries map[entryKey]dom.CollectionEntry
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{nextID: 1, entries: map[entryKey]dom.CollectionEntry{}}
}

func (r *fakeCollectionRepo) ListByUser(_ context.Context, userID int64) ([]dom.CollectionEntry, error) {
	var out []dom.CollectionEntry
	for k, e := range r.entries {
		if k.userID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCollectionRepo) Create(_ context.Context, e dom.CollectionEntry) (dom.CollectionEntry, error) {
	k := entryKey{e.UserID, e.ExternalID}
	if _, ok := r.entries[k]; ok {
		return dom.CollectionEntry{}, &pgconn.PgError{Code: "23505", ConstraintName: "collections_user_id_external_id_key"}
	}
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now().Add(time.Duration(e.ID) * time.Millisecond)
	r.entries[k] = e
	return e, nil
}

func (r *fakeCollectionRepo) Delete(_ context.Context, userID int64, externalID string) (int64, error) {
	k := entryKey{userID, externalID}
	if _, ok := r.entries[k]; !ok {
		return 0, nil
	}
	delete(r.entries, k)
	return 1, nil
}

func (r *fakeCollectionRepo) UpdateStatusNote(_ context.Context, userID int64, externalID, status string, note *string) (int64, error) {
	k := entryKey{userID, externalID}
	e, ok := r.entries[k]
	if !ok {
		return 0, nil
	}
	e.Status = status
	e.Note = note
	r.entries[k] = e
	return 1, nil
}

func (r *fakeCollectionRepo) GetByExternalID(_ context.Context, userID int64, externalID string) (dom.CollectionEntry, error) {
	e, ok := r.entries[entryKey{userID, externalID}]
	if !ok {
		return dom.CollectionEntry{}, pgx.ErrNoRows
	}
	return e, nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCollectionService_Add_DefaultsStatus(t *testing.T) {
	repo := newFakeCollectionRepo()
	svc := NewCollectionService(repo, nil)

	e, err := svc.Add(context.Background(), 1, "4050-1234", "Sandman #1", intPtr(1), nil, nil)
	require.NoError(t, err)
	require.Equal(t, dom.DefaultStatus, e.Status)
	require.Nil(t, e.ImageURL)

	e2, err := svc.Add(context.Background(), 1, "4050-5678", "Sandman #2", nil, nil, strPtr("wishlist"))
	require.NoError(t, err)
	require.Equal(t, "wishlist", e2.Status)
}

func TestCollectionService_Add_MissingFields(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "", "Title", nil, nil, nil)
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Add(context.Background(), 1, "4050-1", "   ", nil, nil, nil)
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestCollectionService_Add_Duplicate(t *testing.T) {
	repo := newFakeCollectionRepo()
	svc := NewCollectionService(repo, nil)

	first, err := svc.Add(context.Background(), 1, "4050-1234", "Sandman #1", nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 1, "4050-1234", "Another title", nil, nil, nil)
	require.ErrorIs(t, err, ErrDuplicateEntry)

	// Stored row is unaffected by the failed attempt.
	stored, found, err := svc.Check(context.Background(), 1, "4050-1234")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, first.Title, stored.Title)

	// Same external ID is fine for a different user.
	_, err = svc.Add(context.Background(), 2, "4050-1234", "Sandman #1", nil, nil, nil)
	require.NoError(t, err)
}

func TestCollectionService_List_Ownership(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "a", "A", nil, nil, nil)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), 1, "b", "B", nil, nil, nil)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), 2, "c", "C", nil, nil, nil)
	require.NoError(t, err)

	list1, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list1, 2)
	for _, e := range list1 {
		require.Equal(t, int64(1), e.UserID)
	}

	list2, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list2, 1)
	require.Equal(t, "c", list2[0].ExternalID)
}

func TestCollectionService_List_NewestFirst(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "old", "Old", nil, nil, nil)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), 1, "new", "New", nil, nil, nil)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "new", list[0].ExternalID)
	require.Equal(t, "old", list[1].ExternalID)
}

func TestCollectionService_Remove(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "4050-1", "X", nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, "4050-1"))
	require.ErrorIs(t, svc.Remove(context.Background(), 1, "4050-1"), ErrNotFound)
}

func TestCollectionService_Remove_OtherUsersEntry(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "4050-1", "X", nil, nil, nil)
	require.NoError(t, err)

	// Indistinguishable from a missing row on purpose.
	require.ErrorIs(t, svc.Remove(context.Background(), 2, "4050-1"), ErrNotFound)

	_, found, err := svc.Check(context.Background(), 1, "4050-1")
	require.NoError(t, err)
	require.True(t, found, "owner's entry must survive")
}

func TestCollectionService_Update_ReplaceSemantics(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, err := svc.Add(context.Background(), 1, "4050-1", "X", nil, nil, strPtr("wishlist"))
	require.NoError(t, err)

	err = svc.Update(context.Background(), 1, "4050-1", strPtr("read"), strPtr("great issue"))
	require.NoError(t, err)

	e, found, err := svc.Check(context.Background(), 1, "4050-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "read", e.Status)
	require.NotNil(t, e.Note)
	require.Equal(t, "great issue", *e.Note)

	// Omitting status resets it to the default and omitting note clears it,
	// even though both were previously set.
	err = svc.Update(context.Background(), 1, "4050-1", nil, nil)
	require.NoError(t, err)

	e, _, err = svc.Check(context.Background(), 1, "4050-1")
	require.NoError(t, err)
	require.Equal(t, dom.DefaultStatus, e.Status)
	require.Nil(t, e.Note)
}

func TestCollectionService_Update_NotFound(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	err := svc.Update(context.Background(), 1, "ghost", strPtr("read"), nil)
	require.ErrorIs(t, err, ErrNotFound)

	// Other user's entry behaves like a missing one.
	_, err2 := svc.Add(context.Background(), 2, "4050-1", "X", nil, nil, nil)
	require.NoError(t, err2)
	require.ErrorIs(t, svc.Update(context.Background(), 1, "4050-1", nil, nil), ErrNotFound)
}

func TestCollectionService_Check(t *testing.T) {
	svc := NewCollectionService(newFakeCollectionRepo(), nil)

	_, found, err := svc.Check(context.Background(), 1, "4050-1")
	require.NoError(t, err)
	require.False(t, found)

	added, err := svc.Add(context.Background(), 1, "4050-1", "X", intPtr(3), strPtr("http://img"), nil)
	require.NoError(t, err)

	e, found, err := svc.Check(context.Background(), 1, "4050-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, added.ID, e.ID)
	require.Equal(t, 3, *e.Number)
}
