package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for kwscope resources.
const uriScheme = "kwscope://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "The product category taxonomy",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)
}

// handleCategoriesResource returns every category as JSON.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	categories, err := s.categories(ctx, false)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling categories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
