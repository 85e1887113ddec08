package report

// Report types.
const (
	TypeGitHub     = "github"
	TypeHackerNews = "hacker_news"
)

// systemPrompts holds the per-type system prompt sent with every request.
var systemPrompts = map[string]string{
	TypeGitHub: `You are a senior engineer writing a concise project progress report.
You will receive a markdown digest of recently closed issues and merged pull
requests for one or more GitHub repositories. Summarize the notable changes
per repository, group related items, and call out anything that looks like a
breaking change or a release. Write in markdown. Do not invent items that are
not in the digest.`,

	TypeHackerNews: `You are a technology analyst writing a daily briefing.
You will receive a markdown rendering of the Hacker News front page. Pick the
most significant stories, summarize each in one or two sentences, and group
them by theme. Write in markdown. Do not invent stories that are not in the
input.`,
}

// SystemPrompt returns the system prompt for a report type, or "" for an
// unknown type.
func SystemPrompt(reportType string) string {
	return systemPrompts[reportType]
}
