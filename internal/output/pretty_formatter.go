package output

import (
	"github.com/charmbracelet/glamour"
)

// PrettyFormatter renders the markdown report for the terminal with glamour
type PrettyFormatter struct {
	// Style is a glamour standard style name; empty means "auto"
	Style string
	// WordWrap defaults to 100 columns
	WordWrap int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(report *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}

	styleOpt := glamour.WithAutoStyle()
	if p.Style != "" {
		styleOpt = glamour.WithStandardStyle(p.Style)
	}
	wrap := p.WordWrap
	if wrap == 0 {
		wrap = 100
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return nil, err
	}
	return out, nil
}
