package exportfile

import (
	"bytes"
	"html/template"

	"ticket-dashboard/internal/domain"
)

// The report is a self-contained HTML document: KPI list, grouped series
// tables, and the filtered data table. Chart rendering belongs to the
// presentation layer, so series are emitted as tables, not images.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
th { background: #f0f0f5; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<h2>KPIs</h2>
<ul>
<li>Total Tickets: {{.Aggregate.Total}}</li>
<li>Active Tickets: {{.Aggregate.Active}}</li>
<li>Completed Tickets: {{.Aggregate.Completed}}</li>
<li>Pending / In-Progress Tickets: {{.PendingInProgress}}</li>
</ul>
{{range .Series}}
<h2>{{.Label}}</h2>
<table>
<tr><th>{{.KeyHeader}}</th><th>Tickets</th></tr>
{{range .Entries}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{end}}
{{if .Aggregate.Timeline}}
<h2>Ticket Trend</h2>
<table>
<tr><th>Period</th><th>Tickets</th></tr>
{{range .Aggregate.Timeline}}<tr><td>{{.Key}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{if .Aggregate.TimelineExcluded}}<p>{{.Aggregate.TimelineExcluded}} tickets without a created date are excluded from the trend.</p>{{end}}
{{end}}
<h2>Filtered Data</h2>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

type seriesSection struct {
	Label     string
	KeyHeader string
	Entries   []domain.SeriesEntry
}

type reportData struct {
	Title             string
	Aggregate         domain.AggregateResult
	PendingInProgress int
	Series            []seriesSection
	Header            []string
	Rows              [][]string
}

func writeHTMLReport(view domain.FilteredView, agg domain.AggregateResult) ([]byte, error) {
	rows := make([][]string, 0, len(view))
	for _, t := range view {
		rows = append(rows, ticketRow(t))
	}

	data := reportData{
		Title:             "Ticket Dashboard Report",
		Aggregate:         agg,
		PendingInProgress: agg.Pending + agg.InProgress,
		Series: []seriesSection{
			{Label: "Tickets by Status", KeyHeader: "Status", Entries: agg.ByStatus},
			{Label: "Tickets by Client", KeyHeader: "Client", Entries: agg.ByClient},
			{Label: "Tickets by Assignee", KeyHeader: "Assignee", Entries: agg.ByAssignee},
			{Label: "Tickets by Priority", KeyHeader: "Priority", Entries: agg.ByPriority},
		},
		Header: exportHeader,
		Rows:   rows,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
