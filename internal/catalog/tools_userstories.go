package catalog

import "net/http"

func userStoryTools() []Tool {
	id := pathID("id", "user story id")

	tools := []Tool{
		{
			Name: "taiga_userstories_list", Title: "List user stories",
			Desc:   "List user stories, filterable by project, milestone, status, and assignee.",
			Tags:   []string{"userstory", "list"},
			Method: http.MethodGet, Path: "/userstories",
			Params: []Param{
				qInt("project", "project id"),
				qInt("milestone", "milestone id"),
				qBool("milestone__isnull", "only backlog stories when true"),
				qInt("status", "status id"),
				qInt("assigned_to", "assignee user id"),
				qInt("epic", "epic id"),
				qStr("tags", "comma-separated tag names"),
				qBool("status__is_archived", "include archived statuses"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_userstory_get", Title: "Get user story",
			Desc:   "Fetch one user story by id.",
			Tags:   []string{"userstory", "get"},
			Method: http.MethodGet, Path: "/userstories/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_userstory_get_by_ref", Title: "Get user story by ref",
			Desc:   "Fetch one user story by its project-scoped reference number.",
			Tags:   []string{"userstory", "get"},
			Method: http.MethodGet, Path: "/userstories/by_ref",
			Params: []Param{
				qInt("ref", "story reference number").req(),
				qInt("project", "project id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_userstory_create", Title: "Create user story",
			Desc:   "Create a user story in a project.",
			Tags:   []string{"userstory", "create"},
			Method: http.MethodPost, Path: "/userstories",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("subject", "story subject").req(),
				bStr("description", "story description"),
				bInt("milestone", "milestone id"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bObj("points", "role id to point id mapping"),
				bBool("is_blocked", "mark the story blocked"),
				bStr("blocked_note", "reason the story is blocked"),
			},
		},
		{
			Name: "taiga_userstory_update", Title: "Update user story",
			Desc:   "Update fields of a user story. version must match the stored one.",
			Tags:   []string{"userstory", "update"},
			Method: http.MethodPatch, Path: "/userstories/{id}",
			Params: []Param{
				id,
				bInt("version", "current story version").req(),
				bStr("subject", "story subject"),
				bStr("description", "story description"),
				bInt("milestone", "milestone id"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bObj("points", "role id to point id mapping"),
				bBool("is_blocked", "mark the story blocked"),
				bStr("blocked_note", "reason the story is blocked"),
				bStr("comment", "comment appended to the story history"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_userstory_delete", Title: "Delete user story",
			Desc:   "Delete a user story.",
			Tags:   []string{"userstory", "delete"},
			Method: http.MethodDelete, Path: "/userstories/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_userstories_bulk_create", Title: "Bulk create user stories",
			Desc:   "Create several user stories from one subject per line.",
			Tags:   []string{"userstory", "create", "bulk"},
			Method: http.MethodPost, Path: "/userstories/bulk_create",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bStr("bulk_stories", "story subjects, one per line").req(),
				bInt("status_id", "status for the new stories"),
			},
		},
		{
			Name: "taiga_userstories_bulk_update_backlog_order", Title: "Reorder backlog",
			Desc:   "Update the backlog order of several user stories.",
			Tags:   []string{"userstory", "update", "bulk", "order"},
			Method: http.MethodPost, Path: "/userstories/bulk_update_backlog_order",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bArr("bulk_stories", "object", "objects with us_id and order").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_userstories_bulk_update_kanban_order", Title: "Reorder kanban",
			Desc:   "Update the kanban order of several user stories.",
			Tags:   []string{"userstory", "update", "bulk", "order"},
			Method: http.MethodPost, Path: "/userstories/bulk_update_kanban_order",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bArr("bulk_stories", "object", "objects with us_id and order").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_userstories_bulk_update_sprint_order", Title: "Reorder sprint",
			Desc:   "Update the sprint order of several user stories.",
			Tags:   []string{"userstory", "update", "bulk", "order"},
			Method: http.MethodPost, Path: "/userstories/bulk_update_sprint_order",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bArr("bulk_stories", "object", "objects with us_id and order").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_userstories_bulk_update_milestone", Title: "Move stories to sprint",
			Desc:   "Move several user stories into a milestone.",
			Tags:   []string{"userstory", "update", "bulk", "move"},
			Method: http.MethodPost, Path: "/userstories/bulk_update_milestone",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bInt("milestone_id", "target milestone id").req(),
				bArr("bulk_stories", "object", "objects with us_id and order").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_userstories_filters_data", Title: "User story filters data",
			Desc:   "Fetch the available filter values for the user stories of a project.",
			Tags:   []string{"userstory", "filters", "get"},
			Method: http.MethodGet, Path: "/userstories/filters_data",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
	}

	tools = append(tools, voteTools("userstory", "/userstories")...)
	tools = append(tools, watchTools("userstory", "/userstories")...)
	tools = append(tools, attachmentTools("userstory", "/userstories")...)
	tools = append(tools, historyTool("userstory", "/history/userstory"))
	return tools
}
