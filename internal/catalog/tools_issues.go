package catalog

import "net/http"

func issueTools() []Tool {
	id := pathID("id", "issue id")

	tools := []Tool{
		{
			Name: "taiga_issues_list", Title: "List issues",
			Desc:   "List issues, filterable by project, status, severity, priority, type, and assignee.",
			Tags:   []string{"issue", "list"},
			Method: http.MethodGet, Path: "/issues",
			Params: []Param{
				qInt("project", "project id"),
				qInt("milestone", "milestone id"),
				qInt("status", "status id"),
				qInt("severity", "severity id"),
				qInt("priority", "priority id"),
				qInt("type", "issue type id"),
				qInt("assigned_to", "assignee user id"),
				qInt("owner", "reporter user id"),
				qStr("tags", "comma-separated tag names"),
				qStr("order_by", "sort field, e.g. severity, priority, or created_date"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_issue_get", Title: "Get issue",
			Desc:   "Fetch one issue by id.",
			Tags:   []string{"issue", "get"},
			Method: http.MethodGet, Path: "/issues/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_issue_get_by_ref", Title: "Get issue by ref",
			Desc:   "Fetch one issue by its project-scoped reference number.",
			Tags:   []string{"issue", "get"},
			Method: http.MethodGet, Path: "/issues/by_ref",
			Params: []Param{
				qInt("ref", "issue reference number").req(),
				qInt("project", "project id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_issue_create", Title: "Create issue",
			Desc:   "Create an issue in a project.",
			Tags:   []string{"issue", "create"},
			Method: http.MethodPost, Path: "/issues",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("subject", "issue subject").req(),
				bStr("description", "issue description"),
				bInt("milestone", "milestone id"),
				bInt("status", "status id"),
				bInt("severity", "severity id"),
				bInt("priority", "priority id"),
				bInt("type", "issue type id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bBool("is_blocked", "mark the issue blocked"),
				bStr("blocked_note", "reason the issue is blocked"),
			},
		},
		{
			Name: "taiga_issue_update", Title: "Update issue",
			Desc:   "Update fields of an issue. version must match the stored one.",
			Tags:   []string{"issue", "update"},
			Method: http.MethodPatch, Path: "/issues/{id}",
			Params: []Param{
				id,
				bInt("version", "current issue version").req(),
				bStr("subject", "issue subject"),
				bStr("description", "issue description"),
				bInt("milestone", "milestone id"),
				bInt("status", "status id"),
				bInt("severity", "severity id"),
				bInt("priority", "priority id"),
				bInt("type", "issue type id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bBool("is_blocked", "mark the issue blocked"),
				bStr("blocked_note", "reason the issue is blocked"),
				bStr("comment", "comment appended to the issue history"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_issue_delete", Title: "Delete issue",
			Desc:   "Delete an issue.",
			Tags:   []string{"issue", "delete"},
			Method: http.MethodDelete, Path: "/issues/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_issues_bulk_create", Title: "Bulk create issues",
			Desc:   "Create several issues from one subject per line.",
			Tags:   []string{"issue", "create", "bulk"},
			Method: http.MethodPost, Path: "/issues/bulk_create",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bStr("bulk_issues", "issue subjects, one per line").req(),
			},
		},
		{
			Name: "taiga_issues_filters_data", Title: "Issue filters data",
			Desc:   "Fetch the available filter values for the issues of a project.",
			Tags:   []string{"issue", "filters", "get"},
			Method: http.MethodGet, Path: "/issues/filters_data",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
	}

	tools = append(tools, voteTools("issue", "/issues")...)
	tools = append(tools, watchTools("issue", "/issues")...)
	tools = append(tools, attachmentTools("issue", "/issues")...)
	tools = append(tools, historyTool("issue", "/history/issue"))
	return tools
}
