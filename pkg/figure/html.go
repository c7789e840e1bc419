package figure

import (
	"bytes"
	"fmt"
	"html/template"
)

// plotlyCDN is the script tag pulled into standalone HTML documents.
const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var htmlTmpl = template.Must(template.New("figure").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.CDN}}"></script>
<style>html, body, #plot { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="plot"></div>
<script>
const fig = {{.Figure}};
Plotly.newPlot("plot", fig.data, fig.layout, {responsive: true});
</script>
</body>
</html>
`))

// RenderHTML wraps the figure in a standalone HTML document that loads
// plotly.js from the CDN and renders into a full-page div.
func RenderHTML(f *Figure) ([]byte, error) {
	data, err := f.Marshal()
	if err != nil {
		return nil, err
	}

	title := "netplot"
	if f.Layout.Title != nil && f.Layout.Title.Text != "" {
		title = f.Layout.Title.Text
	}

	var buf bytes.Buffer
	err = htmlTmpl.Execute(&buf, struct {
		Title  string
		CDN    string
		Figure template.JS
	}{
		Title:  title,
		CDN:    plotlyCDN,
		Figure: template.JS(data),
	})
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
