package catalog

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taigaio/taiga-mcp/internal/middleware"
	"github.com/taigaio/taiga-mcp/internal/taiga"
)

// promptDef is one prompt: argument metadata plus a pure render
// function. Prompts perform no I/O.
type promptDef struct {
	name        string
	description string
	args        []mcp.PromptArgument
	render      func(args map[string]string) (string, error)
}

func prompts() []promptDef {
	return []promptDef{
		{
			name:        "sprint_planning",
			description: "Guide a sprint planning session for a project.",
			args: []mcp.PromptArgument{
				{Name: "project", Description: "project name or slug", Required: true},
				{Name: "sprint_name", Description: "name of the sprint being planned"},
				{Name: "capacity", Description: "team capacity in story points"},
			},
			render: func(a map[string]string) (string, error) {
				text := fmt.Sprintf(
					"You are helping plan a sprint for the Taiga project %q.\n\n"+
						"1. Use taiga_project_get_by_slug or taiga_projects_list to locate the project.\n"+
						"2. List the backlog with taiga_userstories_list (milestone__isnull=true) and review estimates.\n"+
						"3. Propose a sprint scope ordered by priority; flag unestimated stories.\n"+
						"4. After agreement, create the milestone with taiga_milestone_create and move the "+
						"selected stories with taiga_userstories_bulk_update_milestone.",
					a["project"])
				if s := a["sprint_name"]; s != "" {
					text += fmt.Sprintf("\n\nThe sprint will be named %q.", s)
				}
				if c := a["capacity"]; c != "" {
					text += fmt.Sprintf("\nTeam capacity for this sprint is %s story points; do not exceed it.", c)
				}
				return text, nil
			},
		},
		{
			name:        "issue_triage",
			description: "Triage the open issues of a project.",
			args: []mcp.PromptArgument{
				{Name: "project", Description: "project name or slug", Required: true},
				{Name: "focus", Description: "optional focus, e.g. bugs, security, performance"},
			},
			render: func(a map[string]string) (string, error) {
				text := fmt.Sprintf(
					"Triage the open issues of the Taiga project %q.\n\n"+
						"1. Fetch issues with taiga_issues_list and the severity/priority/type vocabularies "+
						"with taiga_severity_list, taiga_priority_list, and taiga_issue_type_list.\n"+
						"2. Group issues by severity and age; surface anything critical or stale.\n"+
						"3. Recommend per-issue actions: reclassify, assign, or close. Apply agreed changes "+
						"with taiga_issue_update.",
					a["project"])
				if f := a["focus"]; f != "" {
					text += fmt.Sprintf("\n\nFocus the triage on: %s.", f)
				}
				return text, nil
			},
		},
		{
			name:        "retrospective",
			description: "Run a sprint retrospective from the sprint's actual data.",
			args: []mcp.PromptArgument{
				{Name: "project", Description: "project name or slug", Required: true},
				{Name: "sprint_name", Description: "name of the finished sprint", Required: true},
			},
			render: func(a map[string]string) (string, error) {
				return fmt.Sprintf(
					"Prepare a retrospective for sprint %q of the Taiga project %q.\n\n"+
						"1. Locate the milestone with taiga_milestones_list and fetch taiga_milestone_stats.\n"+
						"2. Compare committed versus completed points and list carried-over stories.\n"+
						"3. Summarise what went well, what did not, and concrete improvement actions.\n"+
						"4. Record the agreed actions as issues with taiga_issue_create.",
					a["sprint_name"], a["project"]), nil
			},
		},
		{
			name:        "standup_report",
			description: "Produce a daily standup summary for a project.",
			args: []mcp.PromptArgument{
				{Name: "project", Description: "project name or slug", Required: true},
				{Name: "user", Description: "optional username to report on"},
			},
			render: func(a map[string]string) (string, error) {
				text := fmt.Sprintf(
					"Write a daily standup summary for the Taiga project %q.\n\n"+
						"1. Fetch recent activity with taiga_timeline_project.\n"+
						"2. List in-progress work with taiga_userstories_list and taiga_tasks_list.\n"+
						"3. Report per person: done yesterday, planned today, and blockers "+
						"(is_blocked entities with their blocked_note).",
					a["project"])
				if u := a["user"]; u != "" {
					text += fmt.Sprintf("\n\nOnly report on the user %q.", u)
				}
				return text, nil
			},
		},
	}
}

func registerPrompts(s *server.MCPServer, deps Deps) {
	for _, p := range prompts() {
		s.AddPrompt(mcp.Prompt{
			Name:        p.name,
			Description: p.description,
			Arguments:   p.args,
		}, promptHandler(p, deps))
	}
}

// promptHandler validates required arguments and renders through the
// middleware chain.
func promptHandler(p promptDef, deps Deps) func(context.Context, mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	core := func(_ context.Context, inv *middleware.Invocation) (any, error) {
		args := make(map[string]string, len(inv.Args))
		for k, v := range inv.Args {
			s, _ := v.(string)
			args[k] = s
		}
		for _, a := range p.args {
			if a.Required && args[a.Name] == "" {
				return nil, &taiga.Error{
					Kind:    taiga.KindInvalidInput,
					Message: "missing required argument",
					Detail:  a.Name,
				}
			}
		}
		return p.render(args)
	}
	h := deps.Chain(core)

	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := make(map[string]any, len(req.Params.Arguments))
		for k, v := range req.Params.Arguments {
			args[k] = v
		}
		inv := &middleware.Invocation{
			Kind:       middleware.KindPrompt,
			Name:       p.name,
			Args:       args,
			ReadOnly:   true,
			Idempotent: true,
		}
		v, err := h(ctx, inv)
		if err != nil {
			return nil, err
		}
		text, _ := v.(string)
		return &mcp.GetPromptResult{
			Description: p.description,
			Messages: []mcp.PromptMessage{
				{Role: mcp.RoleUser, Content: mcp.NewTextContent(text)},
			},
		}, nil
	}
}
