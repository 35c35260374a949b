package catalog

import "net/http"

func epicTools() []Tool {
	id := pathID("id", "epic id")

	tools := []Tool{
		{
			Name: "taiga_epics_list", Title: "List epics",
			Desc:   "List epics, filterable by project, status, and assignee.",
			Tags:   []string{"epic", "list"},
			Method: http.MethodGet, Path: "/epics",
			Params: []Param{
				qInt("project", "project id"),
				qInt("status", "status id"),
				qInt("assigned_to", "assignee user id"),
				qStr("tags", "comma-separated tag names"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_epic_get", Title: "Get epic",
			Desc:   "Fetch one epic by id.",
			Tags:   []string{"epic", "get"},
			Method: http.MethodGet, Path: "/epics/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_epic_get_by_ref", Title: "Get epic by ref",
			Desc:   "Fetch one epic by its project-scoped reference number.",
			Tags:   []string{"epic", "get"},
			Method: http.MethodGet, Path: "/epics/by_ref",
			Params: []Param{
				qInt("ref", "epic reference number").req(),
				qInt("project", "project id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_epic_create", Title: "Create epic",
			Desc:   "Create an epic in a project.",
			Tags:   []string{"epic", "create"},
			Method: http.MethodPost, Path: "/epics",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("subject", "epic subject").req(),
				bStr("description", "epic description"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bStr("color", "hex color shown on the epics board"),
				bArr("tags", "string", "tag names"),
				bBool("is_blocked", "mark the epic blocked"),
			},
		},
		{
			Name: "taiga_epic_update", Title: "Update epic",
			Desc:   "Update fields of an epic. version must match the stored one.",
			Tags:   []string{"epic", "update"},
			Method: http.MethodPatch, Path: "/epics/{id}",
			Params: []Param{
				id,
				bInt("version", "current epic version").req(),
				bStr("subject", "epic subject"),
				bStr("description", "epic description"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bStr("color", "hex color shown on the epics board"),
				bArr("tags", "string", "tag names"),
				bBool("is_blocked", "mark the epic blocked"),
				bStr("comment", "comment appended to the epic history"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_epic_delete", Title: "Delete epic",
			Desc:   "Delete an epic.",
			Tags:   []string{"epic", "delete"},
			Method: http.MethodDelete, Path: "/epics/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_epics_bulk_create", Title: "Bulk create epics",
			Desc:   "Create several epics from one subject per line.",
			Tags:   []string{"epic", "create", "bulk"},
			Method: http.MethodPost, Path: "/epics/bulk_create",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bStr("bulk_epics", "epic subjects, one per line").req(),
			},
		},
		{
			Name: "taiga_epics_filters_data", Title: "Epic filters data",
			Desc:   "Fetch the available filter values for the epics of a project.",
			Tags:   []string{"epic", "filters", "get"},
			Method: http.MethodGet, Path: "/epics/filters_data",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_epic_related_userstories_list", Title: "List epic user stories",
			Desc:   "List the user stories linked to an epic.",
			Tags:   []string{"epic", "userstory", "list"},
			Method: http.MethodGet, Path: "/epics/{id}/related_userstories",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_epic_related_userstory_create", Title: "Link story to epic",
			Desc:   "Link an existing user story to an epic.",
			Tags:   []string{"epic", "userstory", "create"},
			Method: http.MethodPost, Path: "/epics/{id}/related_userstories",
			Params: []Param{
				id,
				bInt("user_story", "user story id").req(),
				bInt("epic", "epic id").req(),
			},
		},
		{
			Name: "taiga_epic_related_userstories_bulk_create", Title: "Bulk create epic stories",
			Desc:   "Create user stories directly under an epic, one subject per line.",
			Tags:   []string{"epic", "userstory", "create", "bulk"},
			Method: http.MethodPost, Path: "/epics/{id}/related_userstories/bulk_create",
			Params: []Param{
				id,
				bInt("project_id", "project id").req(),
				bStr("bulk_userstories", "story subjects, one per line").req(),
			},
		},
		{
			Name: "taiga_epic_related_userstory_delete", Title: "Unlink story from epic",
			Desc:   "Remove the link between an epic and a user story.",
			Tags:   []string{"epic", "userstory", "delete"},
			Method: http.MethodDelete, Path: "/epics/{id}/related_userstories/{userstory_id}",
			Params: []Param{
				id,
				pathID("userstory_id", "user story id"),
			},
			Destructive: true,
		},
	}

	tools = append(tools, voteTools("epic", "/epics")...)
	tools = append(tools, watchTools("epic", "/epics")...)
	tools = append(tools, attachmentTools("epic", "/epics")...)
	tools = append(tools, historyTool("epic", "/history/epic"))
	return tools
}
