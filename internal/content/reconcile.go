package content

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

// Report summarizes one reconcile pass.
type Report struct {
	Scanned   int      `json:"scanned"`
	Completed int      `json:"completed"`
	Reverted  int      `json:"reverted"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type outcome int

const (
	outcomeCompleted outcome = iota
	outcomeReverted
)

// Reconciler finishes or rolls back renames left behind by interrupted
// updates.
type Reconciler struct {
	store   objectstore.Store
	journal Journal
	log     *zap.Logger
}

// NewReconciler creates a Reconciler for the markers in journal.
func NewReconciler(store objectstore.Store, journal Journal, log *zap.Logger) *Reconciler {
	return &Reconciler{store: store, journal: journal, log: log}
}

// Run resolves every pending marker. The old key of a committed rename is
// deleted. An uncommitted rename is completed only when the new key holds
// the body it recorded; otherwise the marker is dropped and the rename
// treated as never having happened. Failures on one marker do
// not stop the pass; they are counted in the report and the marker is kept.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	markers, err := r.journal.Pending(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, m := range markers {
		if err := ctx.Err(); err != nil {
			return report, apperr.Storage.Wrap(err)
		}
		report.Scanned++

		out, err := r.resolve(ctx, m)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, apperr.Message(err))
			r.log.Warn("reconcile marker",
				zap.String("collection", m.CollectionName),
				zap.String("from", m.FromID),
				zap.String("to", m.ToID),
				zap.Error(err),
			)
			continue
		}

		switch out {
		case outcomeCompleted:
			report.Completed++
		case outcomeReverted:
			report.Reverted++
		}
	}

	r.log.Info("reconcile finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("completed", report.Completed),
		zap.Int("reverted", report.Reverted),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (r *Reconciler) resolve(ctx context.Context, m Marker) (outcome, error) {
	return settle(ctx, r.store, r.journal, m)
}

// settle applies one marker to the bucket and clears it.
func settle(ctx context.Context, store objectstore.Store, journal Journal, m Marker) (outcome, error) {
	if m.FromID == m.ToID {
		return outcomeReverted, journal.Clear(ctx, m.CollectionName, m.FromID)
	}

	// A committed marker proves the new key was written; what happened to it
	// since does not bring the old key back.
	if !m.Committed {
		b, err := store.Get(ctx, ItemKey(m.CollectionName, m.ToID))
		if errors.Is(err, objectstore.ErrNotFound) {
			return outcomeReverted, journal.Clear(ctx, m.CollectionName, m.FromID)
		}
		if err != nil {
			return 0, apperr.Storage.Wrap(err)
		}
		// The claim may have lost ToID to another writer.
		if digestOf(b) != m.Digest {
			return outcomeReverted, journal.Clear(ctx, m.CollectionName, m.FromID)
		}
	}

	if err := store.Delete(ctx, ItemKey(m.CollectionName, m.FromID)); err != nil {
		return 0, apperr.Storage.Wrap(err)
	}
	return outcomeCompleted, journal.Clear(ctx, m.CollectionName, m.FromID)
}
