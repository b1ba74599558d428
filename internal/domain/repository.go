package domain

import (
	"context"
	"time"
)

// BatchJobRepository defines persistence for batch jobs and their items.
type BatchJobRepository interface {
	CreateJob(ctx context.Context, job *BatchJob) error
	CreateItems(ctx context.Context, jobID string, productIDs []string) ([]BatchJobItem, error)
	MarkJobRunning(ctx context.Context, jobID string) error
	UpdateJobProgress(ctx context.Context, jobID string, processed, successful, failed int) error
	FinishJob(ctx context.Context, jobID string, status BatchJobStatus, errMsg string) error
	UpdateItemStatus(ctx context.Context, itemID string, status BatchItemStatus, errMsg string) error
	GetJobForUser(ctx context.Context, jobID, userID string) (*BatchJob, error)
	ListItems(ctx context.Context, jobID string) ([]BatchJobItem, error)
	FailAbandoned(ctx context.Context, olderThan time.Duration) (int64, error)
}

// ProductRepository defines catalog access for the orchestrator and handlers.
type ProductRepository interface {
	GetForStore(ctx context.Context, productID, storeID string) (*Product, error)
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]Product, error)
	UpdateDraft(ctx context.Context, productID string, draft map[string]any) error
	ListVersions(ctx context.Context, productID string) ([]ProductVersion, error)
	GetVersion(ctx context.Context, productID string, version int) (*ProductVersion, error)
	CreateVersion(ctx context.Context, productID, createdBy string, snapshot map[string]any) error
}

// StoreRepository resolves store ownership.
type StoreRepository interface {
	GetForOwner(ctx context.Context, storeID, userID string) (*Store, error)
	ListByOwner(ctx context.Context, userID string) ([]Store, error)
}
