package catalog

// settingsTools covers the per-project configuration families: statuses
// for each entity kind, story points, priorities, severities, issue
// types, and roles. They all share the same CRUD shape.
func settingsTools() []Tool {
	var all []Tool

	all = append(all, settingTools("userstory_status", "/userstory-statuses", "user story status",
		bBool("is_closed", "stories in this status count as closed"),
		bBool("is_archived", "stories in this status are archived"),
		bStr("color", "hex color"),
		bStr("wip_limit", "work-in-progress limit for the kanban column"),
	)...)
	all = append(all, settingTools("task_status", "/task-statuses", "task status",
		bBool("is_closed", "tasks in this status count as closed"),
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("issue_status", "/issue-statuses", "issue status",
		bBool("is_closed", "issues in this status count as closed"),
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("epic_status", "/epic-statuses", "epic status",
		bBool("is_closed", "epics in this status count as closed"),
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("points", "/points", "story points value",
		Param{Name: "value", Type: "number", In: inBody, Desc: "numeric value; null means unestimated"},
	)...)
	all = append(all, settingTools("priority", "/priorities", "priority",
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("severity", "/severities", "severity",
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("issue_type", "/issue-types", "issue type",
		bStr("color", "hex color"),
	)...)
	all = append(all, settingTools("role", "/roles", "role",
		bBool("computable", "role counts towards story points"),
		bArr("permissions", "string", "permission identifiers"),
	)...)

	return all
}
