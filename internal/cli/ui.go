package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/arloliu/tasksplit"
	"github.com/arloliu/tasksplit/source"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func colorPrintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}

// renderSolution prints one row per machine with raw and rate-scaled totals.
func renderSolution(w io.Writer, in *source.Instance, sol *tasksplit.Solution, rates, scaled []float64) {
	title := in.Name
	if title == "" {
		title = "instance"
	}
	colorPrintf(w, bold, "%s: %d tasks on %d machines (%s)\n", title, len(in.Tasks), sol.Result.Machines(), sol.Strategy)

	table := tablewriter.NewWriter(w)
	table.Header("Machine", "Tasks", "Raw Total", "Rate", "Scaled Total")

	for i, bucket := range sol.Result.Partition {
		ids := make([]string, len(bucket))
		for j, task := range bucket {
			ids[j] = fmt.Sprintf("%d(%s)", task.ID, formatMinutes(task.Duration))
		}

		_ = table.Append(
			machineName(in, i),
			strings.Join(ids, " "),
			formatMinutes(sol.Result.Sums[i]),
			formatRate(rates[i]),
			formatMinutes(scaled[i]),
		)
	}

	_ = table.Render()

	summary := green
	if sol.Difference > 0 {
		summary = yellow
	}
	colorPrintf(w, summary, "makespan %s, spread %s", formatMinutes(sol.Makespan), formatMinutes(sol.Difference))
	_, _ = fmt.Fprintf(w, " (%s", formatElapsed(sol.Elapsed))
	if sol.Cached {
		_, _ = fmt.Fprint(w, ", cached")
	}
	if sol.Leaves > 0 {
		_, _ = fmt.Fprintf(w, ", %d assignments searched", sol.Leaves)
	}
	_, _ = fmt.Fprintln(w, ")")
}

// renderComparison prints one row per strategy, marking the smallest spread.
func renderComparison(w io.Writer, sols []*tasksplit.Solution) {
	best := -1
	for i, sol := range sols {
		if best < 0 || sol.Difference < sols[best].Difference {
			best = i
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("Strategy", "Makespan", "Spread", "Searched", "Elapsed")

	for i, sol := range sols {
		name := sol.Strategy
		if i == best {
			name += " *"
		}

		searched := "-"
		if sol.Leaves > 0 {
			searched = strconv.FormatInt(sol.Leaves, 10)
		}

		_ = table.Append(name, formatMinutes(sol.Makespan), formatMinutes(sol.Difference), searched, formatElapsed(sol.Elapsed))
	}

	_ = table.Render()

	if best >= 0 {
		colorPrintf(w, green, "* smallest spread: %s\n", sols[best].Strategy)
	}
}

func machineName(in *source.Instance, i int) string {
	if i < len(in.Machines) && in.Machines[i].Name != "" {
		return in.Machines[i].Name
	}

	return fmt.Sprintf("machine-%d", i)
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(r float64) string {
	return "x" + strconv.FormatFloat(r, 'f', -1, 64)
}

func formatElapsed(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d >= time.Millisecond {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}

	return fmt.Sprintf("%dµs", d.Microseconds())
}
