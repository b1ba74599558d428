package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
	"flowz-server/internal/sqlinline"
)

// BatchJobRepositoryPG implements domain.BatchJobRepository on PostgreSQL.
type BatchJobRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewBatchJobRepository(sql infra.SQLExecutor) *BatchJobRepositoryPG {
	return &BatchJobRepositoryPG{sql: sql}
}

func (r *BatchJobRepositoryPG) CreateJob(ctx context.Context, job *domain.BatchJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = domain.BatchJobPending
	contentTypes, err := json.Marshal(job.ContentTypes)
	if err != nil {
		return fmt.Errorf("marshal content types: %w", err)
	}
	settings, err := json.Marshal(job.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertBatchJob,
		job.ID, job.UserID, job.StoreID, contentTypes, settings, job.TotalItems)
	return err
}

func (r *BatchJobRepositoryPG) CreateItems(ctx context.Context, jobID string, productIDs []string) ([]domain.BatchJobItem, error) {
	items := make([]domain.BatchJobItem, 0, len(productIDs))
	for _, productID := range productIDs {
		item := domain.BatchJobItem{
			ID:        uuid.NewString(),
			JobID:     jobID,
			ProductID: productID,
			Status:    domain.BatchItemPending,
		}
		if _, err := r.sql.Exec(ctx, sqlinline.QInsertBatchItem, item.ID, jobID, productID); err != nil {
			return nil, fmt.Errorf("insert item for product %s: %w", productID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *BatchJobRepositoryPG) MarkJobRunning(ctx context.Context, jobID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkBatchJobRunning, jobID)
	return err
}

func (r *BatchJobRepositoryPG) UpdateJobProgress(ctx context.Context, jobID string, processed, successful, failed int) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpdateBatchJobProgress, jobID, processed, successful, failed)
	return err
}

func (r *BatchJobRepositoryPG) FinishJob(ctx context.Context, jobID string, status domain.BatchJobStatus, errMsg string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QFinishBatchJob, jobID, status, errMsg)
	return err
}

func (r *BatchJobRepositoryPG) UpdateItemStatus(ctx context.Context, itemID string, status domain.BatchItemStatus, errMsg string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpdateBatchItemStatus, itemID, status, errMsg)
	return err
}

func (r *BatchJobRepositoryPG) GetJobForUser(ctx context.Context, jobID, userID string) (*domain.BatchJob, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectBatchJobForUser, jobID, userID)
	var (
		job          domain.BatchJob
		contentTypes []byte
		settings     []byte
	)
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.StoreID,
		&job.Status,
		&contentTypes,
		&settings,
		&job.TotalItems,
		&job.ProcessedItems,
		&job.SuccessfulItems,
		&job.FailedItems,
		&job.ErrorMessage,
		&job.StartedAt,
		&job.CompletedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(contentTypes) > 0 {
		if err := json.Unmarshal(contentTypes, &job.ContentTypes); err != nil {
			return nil, fmt.Errorf("decode content types: %w", err)
		}
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &job.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &job, nil
}

func (r *BatchJobRepositoryPG) ListItems(ctx context.Context, jobID string) ([]domain.BatchJobItem, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectBatchItems, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BatchJobItem
	for rows.Next() {
		var item domain.BatchJobItem
		if err := rows.Scan(
			&item.ID,
			&item.JobID,
			&item.ProductID,
			&item.Status,
			&item.ErrorMessage,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *BatchJobRepositoryPG) FailAbandoned(ctx context.Context, olderThan time.Duration) (int64, error) {
	interval := fmt.Sprintf("%d seconds", int(olderThan.Seconds()))
	tag, err := r.sql.Exec(ctx, sqlinline.QFailAbandonedBatchJobs, interval)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ domain.BatchJobRepository = (*BatchJobRepositoryPG)(nil)
