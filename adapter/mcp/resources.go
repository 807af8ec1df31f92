package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
)

// RegisterResources exposes the strategies and saved lists as resources.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}

	srv.Resource("taskrank://strategies").
		Name("Strategies").
		Description("Scoring strategies and the configured default").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			return jsonResource(uri, deps.Strategies.Handle(ctx))
		})

	srv.Resource("taskrank://lists").
		Name("Task Lists").
		Description("Saved task lists").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if deps.ListLists == nil {
				return nil, tasklist.ErrUnavailable
			}
			lists, err := deps.ListLists.Handle(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, listsOutput{Lists: lists})
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
