package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/models"
)

// StagingStore is the local file store's reconciliation surface: records
// flagged NeedsSync, and the bookkeeping applied after a successful push.
type StagingStore interface {
	PendingProducts(ctx context.Context) ([]models.Product, error)
	MarkProductSynced(ctx context.Context, localID, remoteID string) error
	PendingCategories(ctx context.Context) ([]models.Category, error)
	MarkCategorySynced(ctx context.Context, localID, remoteID string) error
	PendingOrders(ctx context.Context) ([]models.Order, error)
	MarkOrderSynced(ctx context.Context, ref string) error
}

// RemoteStore is the external record store the staged records get pushed to.
type RemoteStore interface {
	ProductStore
	CategoryStore
	CreateOrder(ctx context.Context, o *models.Order) error
}

// Result is the outcome of pushing one record. Records are independent:
// a failed push leaves only that record flagged, nothing is rolled back.
type Result struct {
	LocalID  string `json:"localId"`
	RemoteID string `json:"remoteId,omitempty"`
	Synced   bool   `json:"synced"`
	Error    string `json:"error,omitempty"`
}

// Syncer pushes NeedsSync records from the staging store to the remote store.
// It only ever runs when explicitly invoked; writes never trigger it.
type Syncer struct {
	Staging StagingStore
	Remote  RemoteStore
	Log     *zap.SugaredLogger
}

func NewSyncer(staging StagingStore, remote RemoteStore, log *zap.SugaredLogger) *Syncer {
	return &Syncer{Staging: staging, Remote: remote, Log: log}
}

// SyncProducts pushes every pending product. Local-only records are created
// remotely and rewritten locally under their remote id; previously synced
// records with later local edits are updated in place.
func (s *Syncer) SyncProducts(ctx context.Context) ([]Result, error) {
	pending, err := s.Staging.PendingProducts(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pending))
	for _, p := range pending {
		res := Result{LocalID: p.ID}

		var remote models.Product
		var pushErr error
		if p.LocalOnly {
			pushed := p
			pushed.ID = "" // remote store assigns the canonical id
			remote, pushErr = s.Remote.CreateProduct(ctx, pushed)
		} else {
			remote, pushErr = s.Remote.UpdateProduct(ctx, p)
		}

		if pushErr != nil {
			res.Error = pushErr.Error()
			s.Log.Warnw("product sync failed", "localId", p.ID, "error", pushErr)
			results = append(results, res)
			continue
		}

		if err := s.Staging.MarkProductSynced(ctx, p.ID, remote.ID); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.RemoteID = remote.ID
		res.Synced = true
		results = append(results, res)
	}
	return results, nil
}

func (s *Syncer) SyncCategories(ctx context.Context) ([]Result, error) {
	pending, err := s.Staging.PendingCategories(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pending))
	for _, c := range pending {
		res := Result{LocalID: c.ID}

		var remote models.Category
		var pushErr error
		if c.LocalOnly {
			pushed := c
			pushed.ID = ""
			remote, pushErr = s.Remote.CreateCategory(ctx, pushed)
		} else {
			remote, pushErr = s.Remote.UpdateCategory(ctx, c)
		}

		if pushErr != nil {
			res.Error = pushErr.Error()
			s.Log.Warnw("category sync failed", "localId", c.ID, "error", pushErr)
			results = append(results, res)
			continue
		}

		if err := s.Staging.MarkCategorySynced(ctx, c.ID, remote.ID); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.RemoteID = remote.ID
		res.Synced = true
		results = append(results, res)
	}
	return results, nil
}

// SyncOrders pushes locally captured orders. Orders are only ever created
// remotely, never updated; the remote copy is an archive of the local record.
func (s *Syncer) SyncOrders(ctx context.Context) ([]Result, error) {
	pending, err := s.Staging.PendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pending))
	for _, o := range pending {
		res := Result{LocalID: o.OrderRef}

		pushed := o
		if err := s.Remote.CreateOrder(ctx, &pushed); err != nil {
			res.Error = err.Error()
			s.Log.Warnw("order sync failed", "orderRef", o.OrderRef, "error", err)
			results = append(results, res)
			continue
		}

		if err := s.Staging.MarkOrderSynced(ctx, o.OrderRef); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}
		res.RemoteID = o.OrderRef
		res.Synced = true
		results = append(results, res)
	}
	return results, nil
}
