package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers the planning prompt.
func RegisterPrompts(srv *mcp.Server) error {
	if srv == nil {
		return errors.New("server is required")
	}

	srv.Prompt("plan_next").
		Description("Decide what to work on next from a saved task list.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			list := args["list"]
			if list == "" {
				list = "the list I name"
			}
			return &mcp.PromptResult{
				Description: "Plan the next work session",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me decide what to work on next using ` + list + `. Please:

1. Call tasks.analyze with the list and the "smart" strategy
2. Call tasks.suggest for the top three tasks
3. Point out any circular dependencies that block progress

Keep the answer short: the three tasks in order, one line each on why.`,
						},
					},
				},
			}, nil
		})

	return nil
}
