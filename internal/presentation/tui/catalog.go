package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tickertape/pkg/domain"
)

// CatalogMarkdown describes the tools and prompts as a markdown document.
// Tool descriptions are shown verbatim in code blocks.
func CatalogMarkdown(tools []domain.ToolSpec, prompts []domain.PromptSpec) string {
	var b strings.Builder

	b.WriteString("# Tools\n")
	if len(tools) == 0 {
		b.WriteString("\n_No tools registered._\n")
	}
	for _, t := range tools {
		fmt.Fprintf(&b, "\n## `%s`\n\n", t.Name)
		if len(t.Parameters) > 0 {
			b.WriteString("| Parameter | Type | Required | Description |\n")
			b.WriteString("|---|---|---|---|\n")
			for _, p := range t.Parameters {
				fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", p.Name, p.Type, yesNo(p.Required), cell(p.Description))
			}
			b.WriteString("\n")
		}
		if desc := strings.TrimSpace(t.Description); desc != "" {
			fmt.Fprintf(&b, "```\n%s\n```\n", desc)
		}
	}

	if len(prompts) > 0 {
		b.WriteString("\n# Prompts\n")
		for _, p := range prompts {
			fmt.Fprintf(&b, "\n## `%s`\n\n%s\n", p.Name, p.Description)
			for _, a := range p.Arguments {
				fmt.Fprintf(&b, "\n- `%s`", a.Name)
				if a.Required {
					b.WriteString(" (required)")
				}
				if a.Description != "" {
					fmt.Fprintf(&b, ": %s", a.Description)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
