package github

import (
	"fmt"
	"strings"
)

// Markdown renders the progress digest that becomes the LLM user content.
func (p *Progress) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Progress for %s (%s to %s)\n\n",
		p.Repo, p.Since.Format("2006-01-02"), p.Until.Format("2006-01-02"))

	fmt.Fprintf(&b, "## Issues Closed\n")
	if len(p.ClosedIssues) == 0 {
		b.WriteString("- none\n")
	}
	for _, issue := range p.ClosedIssues {
		fmt.Fprintf(&b, "- %s #%d\n", issue.Title, issue.Number)
	}

	fmt.Fprintf(&b, "\n## Pull Requests Merged\n")
	if len(p.MergedPulls) == 0 {
		b.WriteString("- none\n")
	}
	for _, pr := range p.MergedPulls {
		fmt.Fprintf(&b, "- %s #%d\n", pr.Title, pr.Number)
	}

	return b.String()
}
