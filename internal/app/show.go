package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"tempmatch/internal/config"
	"tempmatch/internal/pipeline"
)

// History prints recently recorded match runs.
func (a *App) History(ctx context.Context, opts HistoryOptions) error {
	driver := strings.ToLower(a.Config.History.Driver)
	if driver == "" || driver == config.DriverNone {
		return errors.New("history disabled; set history.driver to sqlite or postgres")
	}

	rec, err := a.openRecorder(ctx)
	if err != nil {
		return err
	}
	defer rec.Close()

	runs, err := rec.ListRecentRuns(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.Out, "no runs recorded")
		return nil
	}

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Started (UTC)\tStatus\tRows\tAdjusted\tStep\tRounding\tT1\tT3\tOutput\tError")
	for _, run := range runs {
		errMsg := ""
		if run.Error != nil {
			errMsg = sanitizeInline(*run.Error)
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			run.StartedAt.UTC().Format(time.RFC3339),
			run.Status,
			run.Rows,
			run.Adjusted,
			strconv.FormatFloat(run.Step, 'f', -1, 64),
			run.Rounding,
			run.SecondsPath,
			run.TemperaturePath,
			run.OutputPath,
			errMsg,
		)
	}
	return writer.Flush()
}

// printPreview writes the header and up to limit rows as an aligned table.
func printPreview(out io.Writer, res *pipeline.Result, limit int) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(res.Header, "\t"))

	rows := res.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row.Record(res.Rounding), "\t"))
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	if hidden := len(res.Rows) - len(rows); hidden > 0 {
		fmt.Fprintf(out, "... %d more rows\n", hidden)
	}
	return nil
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
