package catalog

import "net/http"

func milestoneTools() []Tool {
	id := pathID("id", "milestone id")

	tools := []Tool{
		{
			Name: "taiga_milestones_list", Title: "List milestones",
			Desc:   "List the milestones (sprints) of a project.",
			Tags:   []string{"milestone", "list"},
			Method: http.MethodGet, Path: "/milestones",
			Params: []Param{
				qInt("project", "project id").req(),
				qBool("closed", "filter by closed state"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_milestone_get", Title: "Get milestone",
			Desc:   "Fetch one milestone by id.",
			Tags:   []string{"milestone", "get"},
			Method: http.MethodGet, Path: "/milestones/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_milestone_create", Title: "Create milestone",
			Desc:   "Create a milestone (sprint) in a project.",
			Tags:   []string{"milestone", "create"},
			Method: http.MethodPost, Path: "/milestones",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("name", "milestone name").req(),
				bStr("estimated_start", "start date, YYYY-MM-DD").req(),
				bStr("estimated_finish", "finish date, YYYY-MM-DD").req(),
			},
		},
		{
			Name: "taiga_milestone_update", Title: "Update milestone",
			Desc:   "Update fields of a milestone.",
			Tags:   []string{"milestone", "update"},
			Method: http.MethodPatch, Path: "/milestones/{id}",
			Params: []Param{
				id,
				bStr("name", "milestone name"),
				bStr("estimated_start", "start date, YYYY-MM-DD"),
				bStr("estimated_finish", "finish date, YYYY-MM-DD"),
				bBool("closed", "close or reopen the milestone"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_milestone_delete", Title: "Delete milestone",
			Desc:   "Delete a milestone. Its stories return to the backlog.",
			Tags:   []string{"milestone", "delete"},
			Method: http.MethodDelete, Path: "/milestones/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_milestone_stats", Title: "Milestone statistics",
			Desc:   "Fetch burndown statistics of a milestone.",
			Tags:   []string{"milestone", "stats", "get"},
			Method: http.MethodGet, Path: "/milestones/{id}/stats",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
	}

	tools = append(tools, watchTools("milestone", "/milestones")...)
	return tools
}
