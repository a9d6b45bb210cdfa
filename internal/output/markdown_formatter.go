package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed templates/report.md.tmpl
var markdownTemplateSource string

var markdownTemplate = template.Must(template.New("report.md").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"cents": FormatCents,
	"pct":   FormatPercentage,
}).Parse(markdownTemplateSource))

// MarkdownFormatter renders the report as GitHub-flavoured markdown
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
