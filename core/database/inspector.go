package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a destination table.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns retrieves the column definitions for a given table.
// The table name may be schema qualified ("custom.Clever_Attendance").
// Column names are lower-cased so callers can compare case-insensitively.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	schema, table := splitTableName(tableName)

	// Check dialect
	if db.Dialector.Name() == DriverSQLite {
		// SQLite exposes PRAGMA table_info as a table-valued function; the name is bound.
		type SQLiteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw("SELECT cid, name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", table).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	// information_schema is shared by SQL Server, MySQL and PostgreSQL.
	query := db.Table("information_schema.columns").
		Select("column_name AS field, data_type AS type").
		Where("table_name = ?", table)
	if schema != "" {
		query = query.Where("table_schema = ?", schema)
	}
	if err := query.Order("ordinal_position").Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	// Normalize names and types to lowercase
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// MissingColumns returns the names in want that the table does not define.
// An unknown table (no columns at all) yields no result; the insert reports that error.
func MissingColumns(db *gorm.DB, tableName string, want []string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}

	known := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		known[col.Field] = struct{}{}
	}

	var missing []string
	for _, name := range want {
		if _, ok := known[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func splitTableName(name string) (schema, table string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
