// Package warehouse writes report rows to the destination database.
//
// The sync engines issue exactly three kinds of statement against a table:
//
//   - LatestDate: a top-1 query ordered by the date column descending. An empty
//     table yields ErrEmptyTable so callers can apply their own floor.
//   - Append: inserts rows in chunks of the configured batch size inside one
//     transaction. Either every row lands or none does.
//   - Replace: deletes every row and inserts the new set in one transaction,
//     used for reports without per-day granularity.
//
// Rows are plain maps from column name to value; gorm orders the columns of
// each INSERT by name. Table names may be schema qualified ("dbo.Clever_Resources").
//
// Usage:
//
//	db, _ := database.Connect(cfg.Database)
//	w := warehouse.New(db, cfg.Sync.BatchSize)
//	latest, err := w.LatestDate(ctx, "dbo.Clever_Participation", "date")
package warehouse
