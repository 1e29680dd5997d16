package reportsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const participation = "Clever_Participation"

var participationReport = Report{Table: "Participation", Directory: "participation", HasDatestamp: true}

type fakeSchema struct {
	missing []string
	err     error
}

func (s fakeSchema) MissingColumns(context.Context, string, []string) ([]string, error) {
	return s.missing, s.err
}

func newTestEngine(wh *memWarehouse, schema SchemaChecker, floor FloorPolicy) *IncrementalEngine {
	return NewIncrementalEngine(
		NewWatermarkStore(wh, "date"), wh, NewAssembler(nil, zap.NewNop()),
		schema, floor, time.UTC, fixedClock, zap.NewNop(),
	)
}

func TestIncremental_CommitsWindowThenUpToDate(t *testing.T) {
	dir := t.TempDir()
	for _, day := range []string{"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"} {
		stageDay(t, dir, day)
	}

	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-05")
	engine := newTestEngine(wh, nil, FloorPolicy{})

	res, err := engine.Sync(context.Background(), participationReport, participation, dir, false)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
	assert.Equal(t, "[2024-01-06, 2024-01-09]", res.Window.String())
	assert.Equal(t, int64(8), res.Rows)
	assert.Len(t, res.Files, 4)
	assert.Equal(t, 1, wh.appends)

	rows := wh.rows(participation)
	require.Len(t, rows, 9)
	assert.Equal(t, "2024-01-06", rows[1]["date"])
	assert.Equal(t, "2024-01-09", rows[8]["date"])
	assert.Nil(t, rows[2]["active"])
	for _, row := range rows {
		assert.NotEqual(t, "2024-01-10", row["date"], "today must never be loaded")
	}

	// Second pass with nothing new staged.
	res, err = engine.Sync(context.Background(), participationReport, participation, dir, false)
	require.NoError(t, err)
	assert.Equal(t, StateUpToDate, res.State)
	assert.Equal(t, 1, wh.appends)
}

func TestIncremental_PartialDeliveryCommits(t *testing.T) {
	dir := t.TempDir()
	stageDay(t, dir, "2024-01-06")
	stageDay(t, dir, "2024-01-08")

	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-05")

	res, err := newTestEngine(wh, nil, FloorPolicy{}).Sync(context.Background(), participationReport, participation, dir, false)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
	assert.Equal(t, []string{"2024-01-06-participation-students.csv", "2024-01-08-participation-students.csv"}, res.Files)
	assert.Equal(t, []string{"2024-01-07-participation-students.csv", "2024-01-09-participation-students.csv"}, res.Missing)

	rows := wh.rows(participation)[1:]
	require.Len(t, rows, 4)
	assert.Equal(t, []any{"2024-01-06", "2024-01-06", "2024-01-08", "2024-01-08"},
		[]any{rows[0]["date"], rows[1]["date"], rows[2]["date"], rows[3]["date"]})
}

func TestIncremental_AllMissingIsEmpty(t *testing.T) {
	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-05")

	res, err := newTestEngine(wh, nil, FloorPolicy{}).Sync(context.Background(), participationReport, participation, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, res.State)
	assert.Len(t, res.Missing, 4)
	assert.Equal(t, 0, wh.appends)
}

func TestIncremental_NoWatermarkAppliesFloor(t *testing.T) {
	dir := t.TempDir()
	stageDay(t, dir, "2024-01-08")
	stageDay(t, dir, "2024-01-09")

	wh := newMemWarehouse()
	engine := newTestEngine(wh, nil, FloorPolicy{LookbackDays: 3})

	res, err := engine.Sync(context.Background(), participationReport, participation, dir, false)
	require.NoError(t, err)
	assert.True(t, res.FloorApplied)
	assert.Equal(t, "[2024-01-07, 2024-01-09]", res.Window.String())
	assert.Equal(t, StateCommitted, res.State)
	assert.Equal(t, int64(4), res.Rows)

	_, err = NewWatermarkStore(newMemWarehouse(), "date").LatestDate(context.Background(), participation)
	assert.ErrorIs(t, err, ErrNoWatermarkFound)
}

func TestIncremental_FloorDateInFuture(t *testing.T) {
	res, err := newTestEngine(newMemWarehouse(), nil, FloorPolicy{Date: date("2024-02-01")}).
		Sync(context.Background(), participationReport, participation, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, StateUpToDate, res.State)
}

func TestIncremental_WatermarkFailure(t *testing.T) {
	wh := newMemWarehouse()
	wh.latestErr = errors.New("login timeout")

	_, err := newTestEngine(wh, nil, FloorPolicy{}).Sync(context.Background(), participationReport, participation, t.TempDir(), false)
	assert.ErrorContains(t, err, "login timeout")
	assert.ErrorContains(t, err, participation)
	assert.NotErrorIs(t, err, ErrNoWatermarkFound)
}

func TestIncremental_CommitFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	stageDay(t, dir, "2024-01-09")

	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-08")
	wh.appendErr = errors.New("deadlock victim")

	_, err := newTestEngine(wh, nil, FloorPolicy{}).Sync(context.Background(), participationReport, participation, dir, false)
	assert.ErrorContains(t, err, "deadlock victim")
	assert.ErrorContains(t, err, "[2024-01-09, 2024-01-09]")
	assert.Len(t, wh.rows(participation), 1)
}

func TestIncremental_SchemaCheck(t *testing.T) {
	dir := t.TempDir()
	stageDay(t, dir, "2024-01-09")
	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-08")

	_, err := newTestEngine(wh, fakeSchema{missing: []string{"active"}}, FloorPolicy{}).
		Sync(context.Background(), participationReport, participation, dir, false)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, 0, wh.appends)

	res, err := newTestEngine(wh, fakeSchema{}, FloorPolicy{}).
		Sync(context.Background(), participationReport, participation, dir, false)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, res.State)
}

func TestIncremental_DryRun(t *testing.T) {
	dir := t.TempDir()
	stageDay(t, dir, "2024-01-09")
	wh := newMemWarehouse()
	wh.seed(participation, "2024-01-08")

	res, err := newTestEngine(wh, nil, FloorPolicy{}).Sync(context.Background(), participationReport, participation, dir, true)
	require.NoError(t, err)
	assert.Equal(t, StateDryRun, res.State)
	assert.Equal(t, int64(2), res.Rows)
	assert.Equal(t, 0, wh.appends)
}

func TestFullReplace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Student_export_2024.csv", "ID,email\n1,a@example.com\n2,b@example.com\n")

	wh := newMemWarehouse()
	wh.seed("Clever_StudentGoogleAccounts", "2020-01-01")
	engine := NewFullReplaceEngine(wh, nil, nil, zap.NewNop())
	report := Report{Table: "StudentGoogleAccounts", FilePattern: "*Student_export*", Rename: map[string]string{"id": "SIS_ID"}}

	res, err := engine.Sync(context.Background(), report, "Clever_StudentGoogleAccounts", path, false)
	require.NoError(t, err)
	assert.Equal(t, StateReplaced, res.State)
	assert.Equal(t, int64(2), res.Rows)

	rows := wh.rows("Clever_StudentGoogleAccounts")
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0]["SIS_ID"])
	assert.Equal(t, 1, wh.replaces)

	_, err = engine.Sync(context.Background(), report, "Clever_StudentGoogleAccounts", dir+"/gone.csv", false)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFullReplace_RenameCollisionKeepsTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "StudentGoogleAccounts.csv", "ID,SIS_ID,email\n1,S-1,a@x\n")

	wh := newMemWarehouse()
	wh.seed("Clever_StudentGoogleAccounts", "2020-01-01")
	engine := NewFullReplaceEngine(wh, nil, nil, zap.NewNop())
	report := Report{Table: "StudentGoogleAccounts", Rename: map[string]string{"id": "SIS_ID"}}

	_, err := engine.Sync(context.Background(), report, "Clever_StudentGoogleAccounts", path, false)
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "StudentGoogleAccounts.csv")
	assert.Equal(t, 0, wh.replaces)
	assert.Len(t, wh.rows("Clever_StudentGoogleAccounts"), 1)
}
