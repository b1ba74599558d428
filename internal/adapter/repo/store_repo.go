package repo

import (
	"context"

	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
	"flowz-server/internal/sqlinline"
)

// StoreRepositoryPG implements domain.StoreRepository on PostgreSQL.
type StoreRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewStoreRepository(sql infra.SQLExecutor) *StoreRepositoryPG {
	return &StoreRepositoryPG{sql: sql}
}

func (r *StoreRepositoryPG) GetForOwner(ctx context.Context, storeID, userID string) (*domain.Store, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectStoreForOwner, storeID, userID)
	var s domain.Store
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.Platform,
		&s.Domain,
		&s.SyncStatus,
		&s.LastSyncedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepositoryPG) ListByOwner(ctx context.Context, userID string) ([]domain.Store, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectStoresByOwner, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Name,
			&s.Platform,
			&s.Domain,
			&s.SyncStatus,
			&s.LastSyncedAt,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

var _ domain.StoreRepository = (*StoreRepositoryPG)(nil)
