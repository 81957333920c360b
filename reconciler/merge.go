package reconciler

import (
	"context"
	"log"

	"github.com/DevNutsPk/demoEcommerce/models"
)

// Login drives the guest → syncing → authenticated transition and runs
// the merge over the persisted guest cart snapshot. A partially failed
// merge still completes the transition; retrying indefinitely would
// block checkout, so the unmerged remainder is left in the local record
// for the next login to re-offer.
func (s *Session) Login(ctx context.Context, userID string) models.MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.syncStatus = models.SyncInProgress
	s.emit(models.SyncEvent{Status: "started", SyncState: models.SyncInProgress})

	res := s.merge(ctx)

	s.mode = models.ModeAuthenticated
	s.syncStatus = res.Status
	s.lastMerge = &res
	s.emit(models.SyncEvent{Status: "completed", SyncState: res.Status})

	if len(res.Failed) > 0 {
		log.Printf("⚠️ Cart sync incomplete for %s: %d of %d items failed",
			s.deviceID, len(res.Failed), len(res.Synced)+len(res.Failed))
	}
	return res
}

// merge pushes the snapshot upstream one item at a time. Sequential
// dispatch is required: the server's add-or-increment must observe each
// prior step's effect when the remote cart already overlaps with the
// guest cart. Failures are collected, never aborting the loop. Must be
// called with s.mu held.
func (s *Session) merge(ctx context.Context) models.MergeResult {
	res := models.MergeResult{
		Status: models.SyncSucceeded,
		Synced: []models.CartLineItem{},
		Failed: []models.MergeFailure{},
	}

	snapshot := s.local.Load(ctx)
	if len(snapshot) == 0 {
		return res
	}

	for _, item := range snapshot {
		if _, err := s.remote.AddOrIncrement(ctx, s.userID, item.ProductID, item.Variant, item.Quantity); err != nil {
			res.Failed = append(res.Failed, models.MergeFailure{Item: item, Err: err.Error()})
			s.emit(models.SyncEvent{Status: "item_failed", ProductID: item.ProductID, Error: err.Error()})
			continue
		}
		res.Synced = append(res.Synced, item)
		s.emit(models.SyncEvent{Status: "item_synced", ProductID: item.ProductID})
	}

	// Rewrite the record to exactly the failed items, quantities intact,
	// so the next login can re-offer them.
	if len(res.Failed) == 0 {
		if err := s.local.Clear(ctx); err != nil {
			log.Printf("⚠️ Failed to clear merged guest cart for %s: %v", s.deviceID, err)
		}
		return res
	}

	remainder := make([]models.CartLineItem, 0, len(res.Failed))
	for _, f := range res.Failed {
		remainder = append(remainder, f.Item)
	}
	if err := s.local.Save(ctx, remainder); err != nil {
		log.Printf("⚠️ Failed to persist unmerged guest items for %s: %v", s.deviceID, err)
	}
	res.Status = models.SyncFailedPartial
	return res
}

// Logout transitions authenticated → guest. The mutex guarantees an
// in-flight merge has finished rewriting the local record before the
// clear runs. The prior session's guest cart is not resurrected: guest
// state always starts empty after logout.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = models.ModeGuest
	s.userID = ""
	s.syncStatus = models.SyncIdle
	s.lastMerge = nil

	if err := s.local.Clear(ctx); err != nil {
		log.Printf("⚠️ Failed to clear guest cart on logout for %s: %v", s.deviceID, err)
	}
}
