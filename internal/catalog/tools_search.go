package catalog

import "net/http"

func searchTools() []Tool {
	return []Tool{
		{
			Name: "taiga_search", Title: "Search project",
			Desc:   "Full-text search across the user stories, issues, tasks, epics, and wiki pages of a project.",
			Tags:   []string{"search", "list"},
			Method: http.MethodGet, Path: "/search",
			Params: []Param{
				qInt("project", "project id").req(),
				qStr("text", "search text").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
	}
}
