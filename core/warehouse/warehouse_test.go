package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"report-sync/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE Clever_Participation (date TEXT, sis_id TEXT, active TEXT)").Error)
	return db
}

func rows(dates ...string) []map[string]any {
	var out []map[string]any
	for i, d := range dates {
		out = append(out, map[string]any{"date": d, "sis_id": string(rune('a' + i)), "active": "true"})
	}
	return out
}

func TestLatestDate_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 0)

	mock.ExpectQuery("SELECT `date` FROM `Clever_Attendance` ORDER BY `date` DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).AddRow(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))

	date, err := w.LatestDate(context.Background(), "Clever_Attendance", "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestDate_EmptyTable(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 0)

	mock.ExpectQuery("SELECT `date` FROM `Clever_Participation`").
		WillReturnRows(sqlmock.NewRows([]string{"date"}))

	_, err := w.LatestDate(context.Background(), "Clever_Participation", "date")
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestLatestDate_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 0)

	mock.ExpectQuery("SELECT `date` FROM `Clever_Resources`").WillReturnError(errors.New("connection reset"))

	_, err := w.LatestDate(context.Background(), "Clever_Resources", "date")
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, ErrEmptyTable)
}

func TestAppend_Mock_Batches(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 2)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `Clever_Participation` \\(`active`,`date`,`sis_id`\\) VALUES \\(\\?,\\?,\\?\\),\\(\\?,\\?,\\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `Clever_Participation` \\(`active`,`date`,`sis_id`\\) VALUES \\(\\?,\\?,\\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := w.Append(context.Background(), "Clever_Participation", rows("2024-01-06", "2024-01-06", "2024-01-08"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_Mock_RollbackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 1)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `Clever_Participation`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `Clever_Participation`").WillReturnError(errors.New("column overflow"))
	mock.ExpectRollback()

	n, err := w.Append(context.Background(), "Clever_Participation", rows("2024-01-06", "2024-01-07"))
	assert.ErrorContains(t, err, "column overflow")
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_Mock(t *testing.T) {
	db, mock := setupMockDB(t)
	w := New(db, 0)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `Clever_StudentGoogleAccounts`").WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectExec("INSERT INTO `Clever_StudentGoogleAccounts`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := w.Replace(context.Background(), "Clever_StudentGoogleAccounts", []map[string]any{{"SIS_ID": "1", "email": "a@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendAndLatestDate_SQLite(t *testing.T) {
	db := setupSQLite(t)
	w := New(db, 2)
	ctx := context.Background()

	_, err := w.LatestDate(ctx, "Clever_Participation", "date")
	assert.ErrorIs(t, err, ErrEmptyTable)

	n, err := w.Append(ctx, "Clever_Participation", rows("2024-01-06", "2024-01-08", "2024-01-08"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	date, err := w.LatestDate(ctx, "Clever_Participation", "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), date)

	n, err = w.Append(ctx, "Clever_Participation", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestReplace_SQLite(t *testing.T) {
	db := setupSQLite(t)
	w := New(db, 0)
	ctx := context.Background()

	_, err := w.Append(ctx, "Clever_Participation", rows("2024-01-06", "2024-01-07"))
	require.NoError(t, err)

	n, err := w.Replace(ctx, "Clever_Participation", rows("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	require.NoError(t, db.Table("Clever_Participation").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAppend_SQLite_UnknownColumnRollsBack(t *testing.T) {
	db := setupSQLite(t)
	w := New(db, 1)

	records := rows("2024-01-06")
	records = append(records, map[string]any{"date": "2024-01-07", "bogus": "x"})

	_, err := w.Append(context.Background(), "Clever_Participation", records)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Table("Clever_Participation").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
