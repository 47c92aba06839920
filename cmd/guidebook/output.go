package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grafana/guidebook/internal/pages"
)

//nolint:gochecknoglobals // Terminal styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	slugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)
)

// printTree writes every page in reading order, indented by depth.
func printTree(w io.Writer, guide *pages.Guide, withHeadings bool) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(guide.Root.Title))

	var walk func(node *pages.TreeNode, depth int)
	walk = func(node *pages.TreeNode, depth int) {
		indent := strings.Repeat("  ", depth)
		if depth > 0 {
			_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, node.Title, slugStyle.Render("/"+node.Slug))
		}
		if withHeadings {
			for _, heading := range node.Headings {
				_, _ = fmt.Fprintf(w, "%s  %s %s\n", indent,
					dimStyle.Render(strings.Repeat("#", heading.Level)), dimStyle.Render(heading.Title))
			}
		}
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(guide.Root, 0)
}

// printSummary writes the outcome of a build.
func printSummary(w io.Writer, pageCount, documentCount int, guidePath, searchPath string) {
	content := fmt.Sprintf("%s\n%s %d\n%s %d\n%s %s\n%s %s",
		successStyle.Render("Build complete"),
		dimStyle.Render("Pages:"), pageCount,
		dimStyle.Render("Documents:"), documentCount,
		dimStyle.Render("Guide:"), guidePath,
		dimStyle.Render("Search:"), searchPath,
	)
	_, _ = fmt.Fprintln(w, boxStyle.Render(content))
}

// printResults writes search hits, one page per line.
func printResults(w io.Writer, query string, results []*pages.TreeNode, total int) {
	if total == 0 {
		_, _ = fmt.Fprintf(w, "%s %q\n", dimStyle.Render("No pages match"), query)
		return
	}

	for _, node := range results {
		line := fmt.Sprintf("%s %s", node.Title, slugStyle.Render("/"+node.Slug))
		if node.Subtitle != "" {
			line += " " + dimStyle.Render(node.Subtitle)
		}
		_, _ = fmt.Fprintln(w, line)
	}

	if total > len(results) {
		_, _ = fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d more", total-len(results))))
	}
}
