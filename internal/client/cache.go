// Package client implements the viewer-side machinery for wishlist pages:
// an optimistic cache over public wishlist snapshots, delayed-commit undo
// timers for destructive actions, and a reconnecting realtime feed. The
// server stays authoritative; everything here is presentation state that
// converges by refetching.
package client

import (
	"sync"

	"giftlist/internal/models"
)

// Store caches PublicWishlist snapshots keyed by slug and supports
// optimistic mutation: apply a patch immediately, then either roll it
// back when the server rejects the mutation or schedule a refetch when it
// lands.
type Store struct {
	mu      sync.Mutex
	lists   map[string]*models.PublicWishlist
	refetch func(slug string)
}

// NewStore creates a Store. refetch is invoked, if non-nil, whenever a
// committed mutation or an invalidation makes the cached snapshot stale.
func NewStore(refetch func(slug string)) *Store {
	return &Store{
		lists:   make(map[string]*models.PublicWishlist),
		refetch: refetch,
	}
}

// Put replaces the cached snapshot for a slug with server truth.
func (s *Store) Put(slug string, wishlist *models.PublicWishlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[slug] = cloneWishlist(wishlist)
}

// Get returns a copy of the cached snapshot, so callers can render it
// without holding any lock.
func (s *Store) Get(slug string) (*models.PublicWishlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wishlist, ok := s.lists[slug]
	if !ok {
		return nil, false
	}
	return cloneWishlist(wishlist), true
}

// OptimisticApply runs mutate against the cached snapshot and returns a
// restore function capturing the pre-mutation state. Calling restore
// undoes the patch exactly; it is safe to call after further mutations,
// which it discards.
func (s *Store) OptimisticApply(slug string, mutate func(*models.PublicWishlist)) (restore func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wishlist, ok := s.lists[slug]
	if !ok {
		return nil, false
	}

	snapshot := cloneWishlist(wishlist)
	mutate(wishlist)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lists[slug] = snapshot
	}, true
}

// CommitOrRollback finishes an optimistic mutation: on error the snapshot
// is restored, on success a refetch is triggered so the cache converges
// to server truth.
func (s *Store) CommitOrRollback(slug string, restore func(), err error) {
	if err != nil {
		if restore != nil {
			restore()
		}
		return
	}
	if s.refetch != nil {
		s.refetch(slug)
	}
}

// Invalidate drops the cached snapshot and triggers a refetch. Realtime
// events land here.
func (s *Store) Invalidate(slug string) {
	s.mu.Lock()
	_, ok := s.lists[slug]
	delete(s.lists, slug)
	s.mu.Unlock()

	if ok && s.refetch != nil {
		s.refetch(slug)
	}
}

func cloneWishlist(wishlist *models.PublicWishlist) *models.PublicWishlist {
	out := *wishlist
	out.ItemsData.Items = make([]models.PublicItem, len(wishlist.ItemsData.Items))
	for i, item := range wishlist.ItemsData.Items {
		clone := item
		if item.Reservation != nil {
			reservation := *item.Reservation
			clone.Reservation = &reservation
		}
		clone.Contributions = append([]models.PublicContribution(nil), item.Contributions...)
		out.ItemsData.Items[i] = clone
	}
	return &out
}
