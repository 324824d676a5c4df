package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/objectstore"
)

// Provisioner creates the backing bucket and opens it for anonymous reads.
type Provisioner struct {
	store objectstore.Store
	log   *zap.Logger
}

// NewProvisioner creates a Provisioner for store's bucket.
func NewProvisioner(store objectstore.Store, log *zap.Logger) *Provisioner {
	return &Provisioner{store: store, log: log}
}

// Provision creates the bucket and installs the public-read policy. It is not
// idempotent: provisioning an existing bucket fails at the create step.
func (p *Provisioner) Provision(ctx context.Context) error {
	bucket := p.store.Bucket()
	if err := p.store.CreateBucket(ctx); err != nil {
		return apperr.Storage.Wrap(err)
	}
	if err := p.store.SetBucketPolicy(ctx, objectstore.PublicReadPolicy(bucket)); err != nil {
		return apperr.Storage.Wrap(err)
	}
	p.log.Info("bucket provisioned", zap.String("bucket", bucket))
	return nil
}
