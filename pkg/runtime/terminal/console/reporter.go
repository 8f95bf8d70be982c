package console

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"text/template"

	"github.com/tally-tools/tally/pkg/models/domain"
)

// Reporter renders tracker output to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) QuantityList(quantities []domain.QuantityType) error {
	if len(quantities) == 0 {
		_, err := fmt.Fprintln(c.writer, "No quantities tracked yet.")
		return err
	}

	tw := tabwriter.NewWriter(c.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFORMAT\tAGGREGATION\tPERIOD\tLAST USED")
	for _, qt := range quantities {
		name := qt.Name
		if qt.Hidden {
			name += " (hidden)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			name,
			qt.ValueFormat.DisplayName(),
			qt.AggregationType,
			qt.AggregationPeriod,
			qt.LastUsedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (c *Reporter) Total(qt domain.QuantityType, total float64) error {
	_, err := fmt.Fprintf(c.writer, "%s: %s (%s, %s)\n",
		qt.Name, qt.ValueFormat.Format(total), qt.AggregationType, qt.AggregationPeriod)
	return err
}

func (c *Reporter) Logged(qt domain.QuantityType, e domain.Entry) error {
	_, err := fmt.Fprintf(c.writer, "Logged %s to %s\n",
		qt.ValueFormat.Format(e.Value), qt.Name)
	return err
}

type reportView struct {
	Name    string
	Period  domain.GroupingPeriod
	Buckets []reportBucket
}

type reportBucket struct {
	Label     string
	Formatted string
	Count     int
}

func (c *Reporter) Report(qt domain.QuantityType, period domain.GroupingPeriod, totals []domain.GroupedTotal) error {
	tmpl := `{{.Name}} by {{.Period}}
{{range .Buckets}}{{.Label}}: {{.Formatted}} ({{.Count}} entries)
{{end}}`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	view := reportView{Name: qt.Name, Period: period}
	for _, g := range totals {
		view.Buckets = append(view.Buckets, reportBucket{
			Label:     g.PeriodLabel,
			Formatted: qt.ValueFormat.Format(g.Total),
			Count:     g.Count,
		})
	}

	return t.Execute(c.writer, view)
}
