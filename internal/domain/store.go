package domain

import "time"

// StoreSyncStatus enumerates the connection state of an external storefront.
type StoreSyncStatus string

const (
	StoreSyncNever   StoreSyncStatus = "never"
	StoreSyncOK      StoreSyncStatus = "synced"
	StoreSyncPending StoreSyncStatus = "pending"
	StoreSyncError   StoreSyncStatus = "error"
)

// Store is an e-commerce storefront owned by a user. Synchronization with
// the external platform happens elsewhere; this service only records status.
type Store struct {
	ID           string
	UserID       string
	Name         string
	Platform     string
	Domain       string
	SyncStatus   StoreSyncStatus
	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
