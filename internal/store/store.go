// Package store implements the data access layer on top of the Firestore
// document database. Every operation is an independent round trip; no state
// is held between calls beyond the client handle itself.
package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/donspeedie/CRM/internal/config"
)

// NewClient initializes the Firestore connection handle. The handle is
// long-lived and safe for concurrent use; it needs no explicit teardown
// before process exit. With an empty credentials file the client falls back
// to application default credentials, which also covers the emulator.
func NewClient(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return firestore.NewClient(ctx, cfg.ProjectID, opts...)
}
