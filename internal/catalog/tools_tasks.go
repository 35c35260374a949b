package catalog

import "net/http"

func taskTools() []Tool {
	id := pathID("id", "task id")

	tools := []Tool{
		{
			Name: "taiga_tasks_list", Title: "List tasks",
			Desc:   "List tasks, filterable by project, milestone, user story, status, and assignee.",
			Tags:   []string{"task", "list"},
			Method: http.MethodGet, Path: "/tasks",
			Params: []Param{
				qInt("project", "project id"),
				qInt("milestone", "milestone id"),
				qInt("user_story", "parent user story id"),
				qInt("status", "status id"),
				qInt("assigned_to", "assignee user id"),
				qStr("tags", "comma-separated tag names"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_task_get", Title: "Get task",
			Desc:   "Fetch one task by id.",
			Tags:   []string{"task", "get"},
			Method: http.MethodGet, Path: "/tasks/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_task_get_by_ref", Title: "Get task by ref",
			Desc:   "Fetch one task by its project-scoped reference number.",
			Tags:   []string{"task", "get"},
			Method: http.MethodGet, Path: "/tasks/by_ref",
			Params: []Param{
				qInt("ref", "task reference number").req(),
				qInt("project", "project id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_task_create", Title: "Create task",
			Desc:   "Create a task, optionally under a user story.",
			Tags:   []string{"task", "create"},
			Method: http.MethodPost, Path: "/tasks",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("subject", "task subject").req(),
				bStr("description", "task description"),
				bInt("milestone", "milestone id"),
				bInt("user_story", "parent user story id"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bBool("is_iocaine", "mark the task as iocaine"),
				bBool("is_blocked", "mark the task blocked"),
				bStr("blocked_note", "reason the task is blocked"),
			},
		},
		{
			Name: "taiga_task_update", Title: "Update task",
			Desc:   "Update fields of a task. version must match the stored one.",
			Tags:   []string{"task", "update"},
			Method: http.MethodPatch, Path: "/tasks/{id}",
			Params: []Param{
				id,
				bInt("version", "current task version").req(),
				bStr("subject", "task subject"),
				bStr("description", "task description"),
				bInt("milestone", "milestone id"),
				bInt("user_story", "parent user story id"),
				bInt("status", "status id"),
				bInt("assigned_to", "assignee user id"),
				bArr("tags", "string", "tag names"),
				bBool("is_iocaine", "mark the task as iocaine"),
				bBool("is_blocked", "mark the task blocked"),
				bStr("blocked_note", "reason the task is blocked"),
				bStr("comment", "comment appended to the task history"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_task_delete", Title: "Delete task",
			Desc:   "Delete a task.",
			Tags:   []string{"task", "delete"},
			Method: http.MethodDelete, Path: "/tasks/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_tasks_bulk_create", Title: "Bulk create tasks",
			Desc:   "Create several tasks from one subject per line.",
			Tags:   []string{"task", "create", "bulk"},
			Method: http.MethodPost, Path: "/tasks/bulk_create",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bStr("bulk_tasks", "task subjects, one per line").req(),
				bInt("milestone_id", "milestone for the new tasks"),
				bInt("us_id", "parent user story for the new tasks"),
			},
		},
		{
			Name: "taiga_tasks_filters_data", Title: "Task filters data",
			Desc:   "Fetch the available filter values for the tasks of a project.",
			Tags:   []string{"task", "filters", "get"},
			Method: http.MethodGet, Path: "/tasks/filters_data",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
	}

	tools = append(tools, voteTools("task", "/tasks")...)
	tools = append(tools, watchTools("task", "/tasks")...)
	tools = append(tools, attachmentTools("task", "/tasks")...)
	tools = append(tools, historyTool("task", "/history/task"))
	return tools
}
