package reportsync

import (
	"fmt"
	"time"

	"report-sync/core/utils"
)

// fileNameFormat is "<YYYY-MM-DD>-<report_directory>-students.csv".
const fileNameFormat = "%s-%s-students.csv"

// ExpectedFileName is the name a dated report file is delivered under.
type ExpectedFileName struct {
	Date      time.Time
	Directory string
}

// String returns the file name.
func (n ExpectedFileName) String() string {
	return fmt.Sprintf(fileNameFormat, n.Date.Format(utils.DateLayout), n.Directory)
}

// ExpectedFileNames returns one name per calendar day in [start, end], ascending.
// start after end yields an empty result.
func ExpectedFileNames(start, end time.Time, directory string) []ExpectedFileName {
	start, end = utils.Date(start), utils.Date(end)
	if start.After(end) {
		return nil
	}

	names := make([]ExpectedFileName, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		names = append(names, ExpectedFileName{Date: day, Directory: directory})
	}
	return names
}
