package catalog

import "net/http"

// Tools returns the full tool catalog. Order is stable so listings are
// deterministic; uniqueness is enforced at registration.
func Tools() []Tool {
	var all []Tool
	all = append(all, authTools()...)
	all = append(all, cacheTools()...)
	all = append(all, projectTools()...)
	all = append(all, userTools()...)
	all = append(all, membershipTools()...)
	all = append(all, userStoryTools()...)
	all = append(all, epicTools()...)
	all = append(all, issueTools()...)
	all = append(all, taskTools()...)
	all = append(all, milestoneTools()...)
	all = append(all, wikiTools()...)
	all = append(all, webhookTools()...)
	all = append(all, settingsTools()...)
	all = append(all, customAttributeTools()...)
	all = append(all, searchTools()...)
	all = append(all, timelineTools()...)
	return all
}

// voteTools builds the standard upvote/downvote/voters triple for one
// entity family.
func voteTools(entity, base string) []Tool {
	id := pathID("id", entity+" id")
	return []Tool{
		{
			Name: "taiga_" + entity + "_upvote", Title: "Upvote " + entity,
			Desc:   "Add the authenticated user's vote to a " + entity + ".",
			Tags:   []string{entity, "vote"},
			Method: http.MethodPost, Path: base + "/{id}/upvote",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_downvote", Title: "Downvote " + entity,
			Desc:   "Remove the authenticated user's vote from a " + entity + ".",
			Tags:   []string{entity, "vote"},
			Method: http.MethodPost, Path: base + "/{id}/downvote",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_voters", Title: "List " + entity + " voters",
			Desc:   "List the users who voted for a " + entity + ".",
			Tags:   []string{entity, "vote", "list"},
			Method: http.MethodGet, Path: base + "/{id}/voters",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
	}
}

// watchTools builds the standard watch/unwatch/watchers triple.
func watchTools(entity, base string) []Tool {
	id := pathID("id", entity+" id")
	return []Tool{
		{
			Name: "taiga_" + entity + "_watch", Title: "Watch " + entity,
			Desc:   "Subscribe the authenticated user to notifications for a " + entity + ".",
			Tags:   []string{entity, "watch"},
			Method: http.MethodPost, Path: base + "/{id}/watch",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_unwatch", Title: "Unwatch " + entity,
			Desc:   "Unsubscribe the authenticated user from a " + entity + ".",
			Tags:   []string{entity, "watch"},
			Method: http.MethodPost, Path: base + "/{id}/unwatch",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_watchers", Title: "List " + entity + " watchers",
			Desc:   "List the users watching a " + entity + ".",
			Tags:   []string{entity, "watch", "list"},
			Method: http.MethodGet, Path: base + "/{id}/watchers",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
	}
}

// attachmentTools builds the attachment CRUD for one entity family.
// Taiga serves attachments under <base>/attachments with object_id and
// project query scoping.
func attachmentTools(entity, base string) []Tool {
	id := pathID("id", "attachment id")
	return []Tool{
		{
			Name: "taiga_" + entity + "_attachments_list", Title: "List " + entity + " attachments",
			Desc:   "List attachments of a " + entity + ".",
			Tags:   []string{entity, "attachment", "list"},
			Method: http.MethodGet, Path: base + "/attachments",
			Params: []Param{
				qInt("project", "project id").req(),
				qInt("object_id", entity+" id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_attachment_get", Title: "Get " + entity + " attachment",
			Desc:   "Fetch one attachment of a " + entity + " by id.",
			Tags:   []string{entity, "attachment", "get"},
			Method: http.MethodGet, Path: base + "/attachments/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_attachment_update", Title: "Update " + entity + " attachment",
			Desc:   "Update the metadata of a " + entity + " attachment.",
			Tags:   []string{entity, "attachment", "update"},
			Method: http.MethodPatch, Path: base + "/attachments/{id}",
			Params: []Param{
				id,
				bStr("description", "attachment description"),
				bBool("is_deprecated", "mark the attachment deprecated"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_attachment_delete", Title: "Delete " + entity + " attachment",
			Desc:   "Delete an attachment of a " + entity + ".",
			Tags:   []string{entity, "attachment", "delete"},
			Method: http.MethodDelete, Path: base + "/attachments/{id}",
			Params: []Param{id}, Destructive: true,
		},
	}
}

// historyTool builds the change-history reader for one entity family.
// Comments live in the history stream.
func historyTool(entity, historyPath string) Tool {
	return Tool{
		Name: "taiga_" + entity + "_history", Title: "Get " + entity + " history",
		Desc:   "Fetch the change history and comments of a " + entity + ".",
		Tags:   []string{entity, "history", "get"},
		Method: http.MethodGet, Path: historyPath + "/{id}",
		Params:   []Param{pathID("id", entity+" id")},
		ReadOnly: true, Idempotent: true,
	}
}

// settingTools builds the list/get/create/update/delete set for one
// project-settings family (statuses, points, priorities, ...). extra
// params are appended to the create and update bodies.
func settingTools(entity, base, what string, extra ...Param) []Tool {
	id := pathID("id", what+" id")
	create := []Param{
		bInt("project", "project id").req(),
		bStr("name", what+" name").req(),
		bInt("order", "sort order"),
	}
	update := []Param{
		id,
		bStr("name", what+" name"),
		bInt("order", "sort order"),
	}
	create = append(create, extra...)
	update = append(update, extra...)

	return []Tool{
		{
			Name: "taiga_" + entity + "_list", Title: "List " + what + "s",
			Desc:   "List the " + what + "s of a project.",
			Tags:   []string{entity, "list"},
			Method: http.MethodGet, Path: base,
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_get", Title: "Get " + what,
			Desc:   "Fetch one " + what + " by id.",
			Tags:   []string{entity, "get"},
			Method: http.MethodGet, Path: base + "/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_create", Title: "Create " + what,
			Desc:   "Create a " + what + " in a project.",
			Tags:   []string{entity, "create"},
			Method: http.MethodPost, Path: base,
			Params: create,
		},
		{
			Name: "taiga_" + entity + "_update", Title: "Update " + what,
			Desc:   "Update a " + what + ".",
			Tags:   []string{entity, "update"},
			Method: http.MethodPatch, Path: base + "/{id}",
			Params: update, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_delete", Title: "Delete " + what,
			Desc:   "Delete a " + what + ".",
			Tags:   []string{entity, "delete"},
			Method: http.MethodDelete, Path: base + "/{id}",
			Params: []Param{id}, Destructive: true,
		},
	}
}
