package catalog

import (
	"context"
	"net/http"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taigaio/taiga-mcp/internal/middleware"
	"github.com/taigaio/taiga-mcp/internal/taiga"
)

var (
	projectURI      = regexp.MustCompile(`^taiga://projects/(\d+)$`)
	projectStatsURI = regexp.MustCompile(`^taiga://projects/(\d+)/stats$`)
)

// registerResources exposes the read-only resource surface: the current
// user's profile, one project, and one project's statistics.
func registerResources(s *server.MCPServer, deps Deps) {
	s.AddResource(
		mcp.NewResource("taiga://me", "Current user",
			mcp.WithResourceDescription("Profile of the authenticated Taiga user."),
			mcp.WithMIMEType("application/json"),
		),
		resourceHandler("taiga://me", deps, func(context.Context, string) (string, error) {
			return "/users/me", nil
		}),
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate("taiga://projects/{id}", "Project",
			mcp.WithTemplateDescription("One Taiga project by id."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		resourceHandler("taiga://projects/{id}", deps, func(_ context.Context, uri string) (string, error) {
			m := projectURI.FindStringSubmatch(uri)
			if m == nil {
				return "", &taiga.Error{Kind: taiga.KindInvalidInput, Message: "malformed project URI", Detail: uri}
			}
			return "/projects/" + m[1], nil
		}),
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate("taiga://projects/{id}/stats", "Project statistics",
			mcp.WithTemplateDescription("Burndown and point statistics of one project."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		resourceHandler("taiga://projects/{id}/stats", deps, func(_ context.Context, uri string) (string, error) {
			m := projectStatsURI.FindStringSubmatch(uri)
			if m == nil {
				return "", &taiga.Error{Kind: taiga.KindInvalidInput, Message: "malformed project stats URI", Detail: uri}
			}
			return "/projects/" + m[1] + "/stats", nil
		}),
	)
}

// resourceHandler runs a resource read through the middleware chain.
// resolve maps the concrete request URI onto an upstream path.
func resourceHandler(name string, deps Deps, resolve func(context.Context, string) (string, error)) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	core := func(ctx context.Context, inv *middleware.Invocation) (any, error) {
		uri, _ := inv.Args["uri"].(string)
		path, err := resolve(ctx, uri)
		if err != nil {
			return nil, err
		}
		return deps.Client.Request(ctx, http.MethodGet, path, nil, nil)
	}
	h := deps.Chain(core)

	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		inv := &middleware.Invocation{
			Kind:       middleware.KindResource,
			Name:       name,
			Args:       map[string]any{"uri": req.Params.URI},
			ReadOnly:   true,
			Idempotent: true,
		}
		v, err := h(ctx, inv)
		if err != nil {
			return nil, err
		}
		text, err := renderResult(v)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}
