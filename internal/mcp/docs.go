package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `streakwatch tracks a GitHub daily activity streak. All tools are read-only.

- get_streak_stats: current, longest and total active days, plus the streak at risk today.
- get_reminder: the reminder text the tracker would send now (optional mode override).
- list_recent_checks: the audit log of scheduled and manual checks.

Read streak://docs/rules for how the streak is counted.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "streak://docs/rules",
		Name:        "streak_rules",
		Title:       "Streak rules",
		Description: "How checks update the streak and when it resets.",
		Content: `# Streak rules

- A day counts when the user performs a PushEvent, PullRequestEvent,
  IssuesEvent, CreateEvent or CommitCommentEvent on that local calendar day.
- A confirmed day extends the streak if the previous active day was
  yesterday; otherwise the streak restarts at 1.
- One missed day leaves the streak alive but at risk. The second missed day
  resets the current streak to 0. The longest streak never decreases.
- When GitHub cannot be reached the check is recorded as unknown and the
  streak is left untouched.
- Checks run at 09:00, 14:00 and 20:00 local time by default, plus once when
  the tracker starts.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
