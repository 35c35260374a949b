package catalog

import "net/http"

func userTools() []Tool {
	id := pathID("id", "user id")

	return []Tool{
		{
			Name: "taiga_users_list", Title: "List users",
			Desc:   "List the users of a project.",
			Tags:   []string{"user", "list"},
			Method: http.MethodGet, Path: "/users",
			Params:   []Param{qInt("project", "project id")},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_get", Title: "Get user",
			Desc:   "Fetch one user by id.",
			Tags:   []string{"user", "get"},
			Method: http.MethodGet, Path: "/users/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_me", Title: "Current user",
			Desc:   "Fetch the profile of the authenticated user.",
			Tags:   []string{"user", "get"},
			Method: http.MethodGet, Path: "/users/me",
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_update", Title: "Update user",
			Desc:   "Update profile fields of a user.",
			Tags:   []string{"user", "update"},
			Method: http.MethodPatch, Path: "/users/{id}",
			Params: []Param{
				id,
				bStr("full_name", "display name"),
				bStr("bio", "profile biography"),
				bStr("email", "contact email"),
				bStr("lang", "interface language code"),
				bStr("timezone", "IANA timezone name"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_user_stats", Title: "User statistics",
			Desc:   "Fetch activity statistics of a user.",
			Tags:   []string{"user", "stats", "get"},
			Method: http.MethodGet, Path: "/users/{id}/stats",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_watched", Title: "Content watched by user",
			Desc:   "List the projects and items a user watches.",
			Tags:   []string{"user", "watch", "list"},
			Method: http.MethodGet, Path: "/users/{id}/watched",
			Params: []Param{
				id,
				qStr("type", "filter by content type: project, userstory, task, issue"),
				qStr("q", "text filter"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_liked", Title: "Projects liked by user",
			Desc:   "List the projects a user liked.",
			Tags:   []string{"user", "like", "list"},
			Method: http.MethodGet, Path: "/users/{id}/liked",
			Params: []Param{
				id,
				qStr("q", "text filter"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_voted", Title: "Content voted by user",
			Desc:   "List the items a user voted for.",
			Tags:   []string{"user", "vote", "list"},
			Method: http.MethodGet, Path: "/users/{id}/voted",
			Params: []Param{
				id,
				qStr("type", "filter by content type: userstory, task, issue"),
				qStr("q", "text filter"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_user_contacts", Title: "User contacts",
			Desc:   "List the contacts of a user.",
			Tags:   []string{"user", "list"},
			Method: http.MethodGet, Path: "/users/{id}/contacts",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
	}
}
