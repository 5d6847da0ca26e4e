package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

// SQLiteLeisureItemRepo stores the reward catalogue.
type SQLiteLeisureItemRepo struct {
	db db.DBTX
}

func NewSQLiteLeisureItemRepo(conn db.DBTX) *SQLiteLeisureItemRepo {
	return &SQLiteLeisureItemRepo{db: conn}
}

func (r *SQLiteLeisureItemRepo) Create(ctx context.Context, item *domain.LeisureItem) error {
	query := `INSERT INTO leisure_items (id, name, cost, icon, description, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Cost, item.Icon, item.Description, formatTimestamp(item.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting leisure item: %w", err)
	}
	return nil
}

func (r *SQLiteLeisureItemRepo) GetByID(ctx context.Context, id string) (*domain.LeisureItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, cost, icon, description, created_at
		FROM leisure_items WHERE id = ?`, id)
	item, err := scanLeisureItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("leisure item %s: %w", id, ErrNotFound)
	}
	return item, err
}

// List orders the catalogue by cost, cheapest first.
func (r *SQLiteLeisureItemRepo) List(ctx context.Context) ([]*domain.LeisureItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, cost, icon, description, created_at
		FROM leisure_items ORDER BY cost, name`)
	if err != nil {
		return nil, fmt.Errorf("listing leisure items: %w", err)
	}
	defer rows.Close()

	var out []*domain.LeisureItem
	for rows.Next() {
		item, err := scanLeisureItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leisure items: %w", err)
	}
	return out, nil
}

func (r *SQLiteLeisureItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leisure_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting leisure items: %w", err)
	}
	return n, nil
}

func (r *SQLiteLeisureItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leisure_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting leisure item: %w", err)
	}
	return rowsAffected(res, "leisure item "+id)
}

func scanLeisureItem(s scanner) (*domain.LeisureItem, error) {
	var item domain.LeisureItem
	var createdAt string
	if err := s.Scan(&item.ID, &item.Name, &item.Cost, &item.Icon, &item.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning leisure item: %w", err)
	}
	var err error
	if item.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &item, nil
}

// SQLitePurchaseRepo stores redeemed leisure items. A purchase copies the
// item's name, icon and cost so it survives the item being deleted.
type SQLitePurchaseRepo struct {
	db db.DBTX
}

func NewSQLitePurchaseRepo(conn db.DBTX) *SQLitePurchaseRepo {
	return &SQLitePurchaseRepo{db: conn}
}

const purchaseColumns = `id, item_id, item_name, item_icon, cost, scheduled_at, purchased_at, status`

func (r *SQLitePurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ItemID, p.ItemName, p.ItemIcon, p.Cost,
		p.ScheduledAt.UTC().Format(time.RFC3339), formatTimestamp(p.PurchasedAt), string(p.Status))
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}
	return nil
}

func (r *SQLitePurchaseRepo) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id)
	p, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePurchaseRepo) List(ctx context.Context) ([]*domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+purchaseColumns+` FROM purchases
		ORDER BY purchased_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}
	return out, nil
}

func (r *SQLitePurchaseRepo) Update(ctx context.Context, p *domain.Purchase) error {
	res, err := r.db.ExecContext(ctx, `UPDATE purchases SET scheduled_at = ?, status = ? WHERE id = ?`,
		p.ScheduledAt.UTC().Format(time.RFC3339), string(p.Status), p.ID)
	if err != nil {
		return fmt.Errorf("updating purchase: %w", err)
	}
	return rowsAffected(res, "purchase "+p.ID)
}

func (r *SQLitePurchaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}
	return rowsAffected(res, "purchase "+id)
}

func scanPurchase(s scanner) (*domain.Purchase, error) {
	var p domain.Purchase
	var scheduledAt, purchasedAt, status string
	err := s.Scan(&p.ID, &p.ItemID, &p.ItemName, &p.ItemIcon, &p.Cost, &scheduledAt, &purchasedAt, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning purchase: %w", err)
	}
	p.Status = domain.PurchaseStatus(status)
	if p.ScheduledAt, err = parseTimestamp(scheduledAt, "scheduled_at"); err != nil {
		return nil, err
	}
	if p.PurchasedAt, err = parseTimestamp(purchasedAt, "purchased_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
