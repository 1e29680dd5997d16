package reportsync

import (
	"context"

	"report-sync/core/database"

	"gorm.io/gorm"
)

// SchemaChecker reports which columns a destination table does not define.
type SchemaChecker interface {
	MissingColumns(ctx context.Context, table string, columns []string) ([]string, error)
}

// DatabaseSchema checks columns against the warehouse catalog.
type DatabaseSchema struct {
	db *gorm.DB
}

// NewSchemaChecker creates a checker on db.
func NewSchemaChecker(db *gorm.DB) *DatabaseSchema {
	return &DatabaseSchema{db: db}
}

// MissingColumns implements SchemaChecker.
func (s *DatabaseSchema) MissingColumns(ctx context.Context, table string, columns []string) ([]string, error) {
	return database.MissingColumns(s.db.WithContext(ctx), table, columns)
}
