package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"skillsetl/internal/pipeline"
)

func printStage2(out io.Writer, report pipeline.Stage2Report) {
	colorize := shouldColorize(out)
	var rows [][]string
	total := 0
	for _, f := range report.Files {
		if f.Skipped {
			rows = append(rows, []string{f.Source, "-", "skipped", ""})
			continue
		}
		for _, t := range f.Tables {
			rows = append(rows, []string{f.Source, t.Name, formatRows(t.Rows, colorize), t.Path})
			total += t.Rows
		}
	}
	writeTable(out, []string{"Source", "Table", "Rows", "Path"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
	fmt.Fprintf(out, "Stage 2 wrote %s rows from %d files (run %s)\n",
		humanize.Comma(int64(total)), len(report.Files), report.RunID)
}

func printStage3(out io.Writer, report pipeline.Stage3Report) {
	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(report.Tables))
	total := 0
	for _, t := range report.Tables {
		rows = append(rows, []string{t.Name, formatRows(t.Rows, colorize), t.Path})
		total += t.Rows
	}
	writeTable(out, []string{"Table", "Rows", "Path"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft})
	fmt.Fprintf(out, "Stage 3 wrote %s rows to %s in %s (run %s)\n",
		humanize.Comma(int64(total)), report.OutputDir, report.Duration.Round(time.Millisecond), report.RunID)
}

// formatRows groups digits for people and leaves plain integers for pipes.
func formatRows(n int, human bool) string {
	if human {
		return humanize.Comma(int64(n))
	}
	return strconv.Itoa(n)
}
