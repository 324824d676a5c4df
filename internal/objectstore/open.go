package objectstore

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverMinio  = "minio"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Open returns the Store implementation selected by driver.
func Open(ctx context.Context, driver string, opts Options) (Store, error) {
	switch driver {
	case DriverMinio, "":
		return NewMinioStore(opts)
	case DriverS3:
		return OpenS3(ctx, opts)
	case DriverMemory:
		m := NewUnprovisionedMemoryStore(opts.Bucket)
		if !opts.ConditionalWrites {
			m.WithoutConditionalWrites()
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
