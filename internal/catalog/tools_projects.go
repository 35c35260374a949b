package catalog

import "net/http"

func projectTools() []Tool {
	id := pathID("id", "project id")

	tools := []Tool{
		{
			Name: "taiga_projects_list", Title: "List projects",
			Desc:   "List projects visible to the authenticated user.",
			Tags:   []string{"project", "list"},
			Method: http.MethodGet, Path: "/projects",
			Params: []Param{
				qInt("member", "filter by member user id"),
				qBool("is_backlog_activated", "only projects with an active backlog"),
				qBool("is_kanban_activated", "only projects with an active kanban"),
				qStr("order_by", "sort field, e.g. total_activity or total_fans"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_get", Title: "Get project",
			Desc:   "Fetch one project by id.",
			Tags:   []string{"project", "get"},
			Method: http.MethodGet, Path: "/projects/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_get_by_slug", Title: "Get project by slug",
			Desc:   "Fetch one project by its URL slug.",
			Tags:   []string{"project", "get"},
			Method: http.MethodGet, Path: "/projects/by_slug",
			Params:   []Param{qStr("slug", "project slug").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_create", Title: "Create project",
			Desc:   "Create a project.",
			Tags:   []string{"project", "create"},
			Method: http.MethodPost, Path: "/projects",
			Params: []Param{
				bStr("name", "project name").req(),
				bStr("description", "project description").req(),
				bBool("is_private", "restrict visibility to members"),
				bBool("is_backlog_activated", "enable the backlog module"),
				bBool("is_kanban_activated", "enable the kanban module"),
				bBool("is_issues_activated", "enable the issues module"),
				bBool("is_wiki_activated", "enable the wiki module"),
				bStr("creation_template", "template slug, e.g. scrum or kanban"),
			},
		},
		{
			Name: "taiga_project_update", Title: "Update project",
			Desc:   "Update fields of a project.",
			Tags:   []string{"project", "update"},
			Method: http.MethodPatch, Path: "/projects/{id}",
			Params: []Param{
				id,
				bStr("name", "project name"),
				bStr("description", "project description"),
				bBool("is_private", "restrict visibility to members"),
				bBool("is_backlog_activated", "enable the backlog module"),
				bBool("is_kanban_activated", "enable the kanban module"),
				bBool("is_issues_activated", "enable the issues module"),
				bBool("is_wiki_activated", "enable the wiki module"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_project_delete", Title: "Delete project",
			Desc:   "Delete a project and everything in it.",
			Tags:   []string{"project", "delete"},
			Method: http.MethodDelete, Path: "/projects/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_project_duplicate", Title: "Duplicate project",
			Desc:   "Create a copy of a project with selected members.",
			Tags:   []string{"project", "create"},
			Method: http.MethodPost, Path: "/projects/{id}/duplicate",
			Params: []Param{
				id,
				bStr("name", "name of the copy").req(),
				bStr("description", "description of the copy").req(),
				bBool("is_private", "restrict visibility to members"),
				bArr("users", "integer", "member user ids to carry over"),
			},
		},
		{
			Name: "taiga_project_stats", Title: "Project statistics",
			Desc:   "Fetch burndown and point statistics of a project.",
			Tags:   []string{"project", "stats", "get"},
			Method: http.MethodGet, Path: "/projects/{id}/stats",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_issues_stats", Title: "Project issue statistics",
			Desc:   "Fetch per-status, per-priority, and per-severity issue counts of a project.",
			Tags:   []string{"project", "issue", "stats", "get"},
			Method: http.MethodGet, Path: "/projects/{id}/issues_stats",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_modules", Title: "Project modules configuration",
			Desc:   "Fetch the third-party modules configuration of a project.",
			Tags:   []string{"project", "get"},
			Method: http.MethodGet, Path: "/projects/{id}/modules",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_modules_update", Title: "Update project modules",
			Desc:   "Update the third-party modules configuration of a project.",
			Tags:   []string{"project", "update"},
			Method: http.MethodPatch, Path: "/projects/{id}/modules",
			Params: []Param{
				id,
				bObj("modules", "module configuration keyed by module name").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_project_tags_colors", Title: "Project tag colors",
			Desc:   "Fetch the tags of a project with their colors.",
			Tags:   []string{"project", "tag", "get"},
			Method: http.MethodGet, Path: "/projects/{id}/tags_colors",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_project_tag_create", Title: "Create project tag",
			Desc:   "Add a tag to a project's tag palette.",
			Tags:   []string{"project", "tag", "create"},
			Method: http.MethodPost, Path: "/projects/{id}/create_tag",
			Params: []Param{
				id,
				bStr("tag", "tag name").req(),
				bStr("color", "hex color, e.g. #fc8eac"),
			},
		},
		{
			Name: "taiga_project_tag_edit", Title: "Edit project tag",
			Desc:   "Rename a project tag or change its color.",
			Tags:   []string{"project", "tag", "update"},
			Method: http.MethodPost, Path: "/projects/{id}/edit_tag",
			Params: []Param{
				id,
				bStr("from_tag", "current tag name").req(),
				bStr("to_tag", "new tag name"),
				bStr("color", "hex color"),
			},
		},
		{
			Name: "taiga_project_tag_delete", Title: "Delete project tag",
			Desc:   "Remove a tag from a project and from every entity carrying it.",
			Tags:   []string{"project", "tag", "delete"},
			Method: http.MethodPost, Path: "/projects/{id}/delete_tag",
			Params: []Param{
				id,
				bStr("tag", "tag name").req(),
			},
			Destructive: true,
		},
		{
			Name: "taiga_project_tags_mix", Title: "Mix project tags",
			Desc:   "Merge several project tags into one.",
			Tags:   []string{"project", "tag", "update"},
			Method: http.MethodPost, Path: "/projects/{id}/mix_tags",
			Params: []Param{
				id,
				bArr("from_tags", "string", "tags to merge").req(),
				bStr("to_tag", "surviving tag").req(),
			},
		},
		{
			Name: "taiga_project_like", Title: "Like project",
			Desc:   "Add the authenticated user's like to a project.",
			Tags:   []string{"project", "like"},
			Method: http.MethodPost, Path: "/projects/{id}/like",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_project_unlike", Title: "Unlike project",
			Desc:   "Remove the authenticated user's like from a project.",
			Tags:   []string{"project", "like"},
			Method: http.MethodPost, Path: "/projects/{id}/unlike",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_project_fans", Title: "List project fans",
			Desc:   "List the users who liked a project.",
			Tags:   []string{"project", "like", "list"},
			Method: http.MethodGet, Path: "/projects/{id}/fans",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
	}

	tools = append(tools, watchTools("project", "/projects")...)
	return tools
}
