package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"report-sync/core/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyTable is returned by LatestDate when the table holds no rows.
var ErrEmptyTable = errors.New("table has no rows")

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// Warehouse is the destination of report rows.
type Warehouse interface {
	// LatestDate returns the most recent value of column in table.
	LatestDate(ctx context.Context, table, column string) (time.Time, error)
	// Append inserts records into table in one transaction.
	Append(ctx context.Context, table string, records []map[string]any) (int64, error)
	// Replace deletes every row of table and inserts records in one transaction.
	Replace(ctx context.Context, table string, records []map[string]any) (int64, error)
}

// GormWarehouse implements Warehouse on a gorm connection.
type GormWarehouse struct {
	db        *gorm.DB
	batchSize int
}

// New creates a warehouse writing batchSize rows per statement.
func New(db *gorm.DB, batchSize int) *GormWarehouse {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &GormWarehouse{db: db, batchSize: batchSize}
}

// DB returns the underlying connection.
func (w *GormWarehouse) DB() *gorm.DB {
	return w.db
}

// LatestDate runs a top-1 query ordered by column descending.
func (w *GormWarehouse) LatestDate(ctx context.Context, table, column string) (time.Time, error) {
	var rows []map[string]any
	err := w.db.WithContext(ctx).
		Table(table).
		Select(column).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: true}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest %s from %s: %w", column, table, err)
	}
	if len(rows) == 0 {
		return time.Time{}, fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}

	value, ok := rows[0][column]
	if !ok {
		// Some drivers report the column under a different case.
		for _, v := range rows[0] {
			value = v
		}
	}
	if value == nil {
		return time.Time{}, fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}

	date, err := utils.ToDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse latest %s from %s: %w", column, table, err)
	}
	return date, nil
}

// Append implements Warehouse.
func (w *GormWarehouse) Append(ctx context.Context, table string, records []map[string]any) (int64, error) {
	var affected int64
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := w.insert(tx, table, records)
		affected = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to append %d rows to %s: %w", len(records), table, err)
	}
	return affected, nil
}

// Replace implements Warehouse.
func (w *GormWarehouse) Replace(ctx context.Context, table string, records []map[string]any) (int64, error) {
	var affected int64
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ?", clause.Table{Name: table}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		n, err := w.insert(tx, table, records)
		affected = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace %s with %d rows: %w", table, len(records), err)
	}
	return affected, nil
}

// insert writes records in chunks on an open transaction.
func (w *GormWarehouse) insert(tx *gorm.DB, table string, records []map[string]any) (int64, error) {
	var affected int64
	for start := 0; start < len(records); start += w.batchSize {
		end := min(start+w.batchSize, len(records))
		chunk := records[start:end]
		result := tx.Table(table).Create(&chunk)
		if result.Error != nil {
			return affected, fmt.Errorf("failed to insert rows %d-%d: %w", start+1, end, result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}
