package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-isatty"
	"github.com/petrarca/snippet-lang/internal/types"
)

var (
	colorPrimary = lipgloss.Color("39")
	colorDim     = lipgloss.Color("241")
	colorWarning = lipgloss.Color("220")
)

// textStyles styles text output; the zero value renders plain text
type textStyles struct {
	color   bool
	header  lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
}

// stylesFor returns colored styles when w is a terminal, plain ones otherwise
func stylesFor(w io.Writer) textStyles {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		plain := lipgloss.NewStyle()
		return textStyles{header: plain, label: plain, dim: plain, warning: plain}
	}
	return textStyles{
		color:   true,
		header:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		label:   lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
	}
}

// language renders a display name in its Linguist color
func (s textStyles) language(lang types.Language) string {
	name := lang.PrettyName()
	if !s.color {
		return name
	}
	info, ok := types.Lookup(string(lang))
	if !ok {
		return name
	}
	color := enry.GetColor(info.LinguistName)
	if color == "" {
		return s.label.Render(name)
	}
	return s.label.Foreground(lipgloss.Color(color)).Render(name)
}
