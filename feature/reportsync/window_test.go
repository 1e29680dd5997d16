package reportsync

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowAfter_NeverIncludesToday(t *testing.T) {
	yesterday := Yesterday(fixedClock(), time.UTC)
	w := WindowAfter(date("2024-01-05"), yesterday)

	assert.Equal(t, date("2024-01-06"), w.Start)
	assert.Equal(t, date("2024-01-09"), w.End)
	assert.Equal(t, 4, w.Days())
	assert.False(t, w.Empty())
	assert.Equal(t, "[2024-01-06, 2024-01-09]", w.String())
}

func TestWindowAfter_UpToDate(t *testing.T) {
	w := WindowAfter(date("2024-01-09"), date("2024-01-09"))
	assert.True(t, w.Empty())
	assert.Equal(t, 0, w.Days())
}

func TestYesterday_Timezone(t *testing.T) {
	// 2024-01-10 03:00 UTC is still 2024-01-09 in Los Angeles.
	now := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	assert.Equal(t, date("2024-01-09"), Yesterday(now, time.UTC))
	assert.Equal(t, date("2024-01-08"), Yesterday(now, la))
	assert.Equal(t, date("2024-01-09"), Yesterday(now, nil))
}

func TestFloorPolicy(t *testing.T) {
	yesterday := date("2024-01-09")

	assert.Equal(t, date("2023-09-01"), FloorPolicy{Date: date("2023-09-01"), LookbackDays: 30}.Start(yesterday))
	assert.Equal(t, date("2023-12-11"), FloorPolicy{LookbackDays: 30}.Start(yesterday))
	assert.Equal(t, yesterday, FloorPolicy{}.Start(yesterday))
}

func TestWindow_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Window{Start: date("2024-01-06"), End: date("2024-01-09")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-01-06","end":"2024-01-09","days":4}`, string(data))
}

func TestConfig_TableNameAndFloor(t *testing.T) {
	cfg := Config{TablePrefix: "Clever_", Schema: "custom", InitialLookbackDays: 7, FloorDate: "2023-08-15"}
	assert.Equal(t, "custom.Clever_Participation", cfg.TableName(Report{Table: "Participation"}))

	cfg.Schema = ""
	assert.Equal(t, "Clever_Participation", cfg.TableName(Report{Table: "Participation"}))

	floor, err := cfg.Floor()
	require.NoError(t, err)
	assert.Equal(t, date("2023-08-15"), floor.Date)

	_, err = Config{FloorDate: "15/08/2023"}.Floor()
	assert.Error(t, err)

	_, err = Config{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
