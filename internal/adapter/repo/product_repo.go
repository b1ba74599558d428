package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flowz-server/internal/domain"
	"flowz-server/internal/infra"
	"flowz-server/internal/sqlinline"
)

// ProductRepositoryPG implements domain.ProductRepository on PostgreSQL.
type ProductRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewProductRepository(sql infra.SQLExecutor) *ProductRepositoryPG {
	return &ProductRepositoryPG{sql: sql}
}

func (r *ProductRepositoryPG) GetForStore(ctx context.Context, productID, storeID string) (*domain.Product, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProductForStore, productID, storeID)
	product, err := scanProduct(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *ProductRepositoryPG) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.sql.Query(ctx, sqlinline.QSelectProductsByStore, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *ProductRepositoryPG) UpdateDraft(ctx context.Context, productID string, draft map[string]any) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QUpdateProductDraft, productID, raw)
	return err
}

func (r *ProductRepositoryPG) ListVersions(ctx context.Context, productID string) ([]domain.ProductVersion, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectProductVersions, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []domain.ProductVersion
	for rows.Next() {
		var v domain.ProductVersion
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Version, &v.Snapshot, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *ProductRepositoryPG) GetVersion(ctx context.Context, productID string, version int) (*domain.ProductVersion, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProductVersion, productID, version)
	var v domain.ProductVersion
	if err := row.Scan(&v.ID, &v.ProductID, &v.Version, &v.Snapshot, &v.CreatedBy, &v.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *ProductRepositoryPG) CreateVersion(ctx context.Context, productID, createdBy string, snapshot map[string]any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertProductVersion, uuid.NewString(), productID, raw, createdBy)
	return err
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		attributes []byte
		working    []byte
		draft      []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.StoreID,
		&p.Title,
		&p.SKU,
		&p.Price,
		&p.ImageURL,
		&p.Categories,
		&p.Tags,
		&attributes,
		&working,
		&draft,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &p.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes: %w", err)
		}
	}
	if len(working) > 0 {
		if err := json.Unmarshal(working, &p.WorkingContent); err != nil {
			return nil, fmt.Errorf("decode working content: %w", err)
		}
	}
	if len(draft) > 0 {
		if err := json.Unmarshal(draft, &p.DraftContent); err != nil {
			return nil, fmt.Errorf("decode draft content: %w", err)
		}
	}
	return &p, nil
}

var _ domain.ProductRepository = (*ProductRepositoryPG)(nil)
