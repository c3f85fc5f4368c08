package export

import "html/template"

var pageTemplate = template.Must(template.New("month").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 12mm; }
* { box-sizing: border-box; }
body { margin: 0; background: {{.Colors.Bg}}; color: {{.Colors.Text}}; font-family: "Helvetica Neue", Arial, sans-serif; }
h1 { font-size: 18pt; font-weight: 600; letter-spacing: 1px; margin: 0 0 8pt; }
.weekdays, .grid { display: grid; grid-template-columns: repeat({{.Columns}}, 1fr); }
.weekdays { padding-bottom: 6pt; }
.weekdays span { text-align: center; font-size: 10pt; font-weight: 700; letter-spacing: 1.5px; }
.grid { border-top: 1px solid {{.Colors.Border}}; border-left: 1px solid {{.Colors.Border}}; }
.cell { position: relative; overflow: hidden; aspect-ratio: {{.AspectRatio}}; background: {{.Colors.CellBg}}; border-right: 1px solid {{.Colors.Border}}; border-bottom: 1px solid {{.Colors.Border}}; display: flex; flex-direction: column; }
.cell.week { background: {{.Colors.WeekText}}; color: {{.Colors.Bg}}; justify-content: center; align-items: center; font-weight: 700; }
.date { position: absolute; top: 2px; left: 4px; font-size: {{.DateSize}}; z-index: 2; }
.photo { position: relative; width: 100%; aspect-ratio: 1; overflow: hidden; background: {{.Colors.Placeholder}}; }
.photo img { width: 100%; height: 100%; object-fit: cover; }
.filter { position: absolute; inset: 0; }
.text { flex: 1; display: flex; align-items: center; justify-content: center; overflow: hidden; }
.text > div { width: 100%; }
.text p { margin: 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Weekdays}}
<div class="weekdays">{{range .Weekdays}}<span style="color: {{.Color}}">{{.Name}}</span>{{end}}</div>
{{- end}}
<div class="grid">
{{- range .Cells}}
{{- if eq .Kind "week"}}
<div class="cell week">{{.Label}}</div>
{{- else if eq .Kind "day"}}
<div class="cell day">
<span class="date" style="{{.DateStyle}}">{{.Day}}</span>
<div class="photo">
{{- if .Image}}<img src="{{.Image}}" alt="" style="{{.ImageStyle}}">{{end}}
{{- if .Filter}}<div class="filter" style="{{.Filter}}"></div>{{end}}
</div>
{{- if .Text}}
<div class="text"><div style="{{.TextStyle}}"{{if .SingleLine}} data-single-line="true" data-min-font-scale="{{$.MinFontScale}}" data-min-font-size="{{.MinFont}}"{{end}}>{{.Text}}</div></div>
{{- end}}
</div>
{{- else}}
<div class="cell empty"></div>
{{- end}}
{{- end}}
</div>
</body>
</html>
`))
