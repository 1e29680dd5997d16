// Package database handles warehouse connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// connections for the supported warehouse dialects based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection for one of the supported drivers:
//   - sqlserver (default): the reporting warehouse the reports are loaded into
//   - mysql, postgres: alternative warehouses
//   - sqlite: local runs and tests (":memory:" or a file path)
//
// # Schema Inspection
//
// GetTableColumns lists a destination table's columns (information_schema, or PRAGMA for
// sqlite). MissingColumns is used by the sync engine to reject a load whose CSV header
// names columns the destination table does not have.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "custom.Clever_Participation")
package database
