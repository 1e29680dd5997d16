package reportsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"report-sync/core/warehouse"
)

// WatermarkStore reads the latest loaded date of a destination table.
type WatermarkStore interface {
	LatestDate(ctx context.Context, table string) (time.Time, error)
}

// WarehouseWatermarks reads watermarks from the warehouse date column.
type WarehouseWatermarks struct {
	warehouse warehouse.Warehouse
	column    string
}

// NewWatermarkStore creates a store reading column from the warehouse.
func NewWatermarkStore(wh warehouse.Warehouse, column string) *WarehouseWatermarks {
	return &WarehouseWatermarks{warehouse: wh, column: column}
}

// LatestDate implements WatermarkStore. An empty table yields ErrNoWatermarkFound.
func (s *WarehouseWatermarks) LatestDate(ctx context.Context, table string) (time.Time, error) {
	date, err := s.warehouse.LatestDate(ctx, table, s.column)
	if errors.Is(err, warehouse.ErrEmptyTable) {
		return time.Time{}, fmt.Errorf("%s: %w", table, ErrNoWatermarkFound)
	}
	if err != nil {
		return time.Time{}, err
	}
	return date, nil
}
