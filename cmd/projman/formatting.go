package projman

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/projman/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpStyled reports whether help output may carry ANSI styling. Help
// goes to stdout, and NO_COLOR turns styling off everywhere.
func helpStyled() bool {
	return os.Getenv("NO_COLOR") == "" && ui.IsTerminal(os.Stdout)
}

func formatBold(s string) string {
	if !helpStyled() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting registers the helpers used by MsgUsageTemplate
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}
