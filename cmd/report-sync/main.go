package main

import (
	_ "time/tzdata"

	"report-sync/cmd"
)

func main() {
	cmd.Execute()
}
