package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteTables prints the class counts and every non-empty histogram as
// aligned tables.
func (s Summary) WriteTables(w io.Writer) {
	total := s.Trials
	if total > 0 {
		fmt.Fprintf(w, "Classes (%d trials)\n", total)
		rows := make([][]string, 0, len(s.Counts))
		for _, class := range []string{"empty", "const", "cycle"} {
			n := s.Counts[class]
			rows = append(rows, []string{class, strconv.FormatUint(n, 10), percent(n, total)})
		}
		WriteTable(w, []string{"CLASS", "COUNT", "SHARE"}, rows,
			[]string{"Total", strconv.FormatUint(total, 10), "100.00%"})

		fmt.Fprintln(w, "Periods")
		writeHistogram(w, "PERIOD", Sorted(s.Periods), total)
		fmt.Fprintln(w, "Transients")
		writeHistogram(w, "TRANSIENT", Sorted(s.Transients), total)
	}
	if s.Searches > 0 {
		fmt.Fprintf(w, "Predecessor counts (%d boards)\n", s.Searches)
		writeHistogram(w, "PREDECESSORS", Sorted(s.Indegrees), s.Searches)
	}

	var failed [][]string
	for _, reason := range []string{"overflow", "out_of_bounds", "state_limit"} {
		if n := s.Errors[reason]; n > 0 {
			failed = append(failed, []string{reason, strconv.FormatUint(n, 10)})
		}
	}
	if len(failed) > 0 {
		fmt.Fprintln(w, "Abandoned")
		WriteTable(w, []string{"REASON", "COUNT"}, failed, nil)
	}
}

func writeHistogram(w io.Writer, key string, buckets []Bucket, total uint64) {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			strconv.FormatUint(b.Key, 10),
			strconv.FormatUint(b.Count, 10),
			percent(b.Count, total),
		})
	}
	WriteTable(w, []string{key, "COUNT", "SHARE"}, rows, nil)
}

// WriteTable renders one right-aligned table. A nil footer is omitted.
func WriteTable(w io.Writer, header []string, rows [][]string, footer []string) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(header)
	if footer != nil {
		table.SetFooter(footer)
	}
	table.AppendBulk(rows)
	table.Render()
}

func percent(n, total uint64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(n)*100/float64(total))
}
