package catalog

import "net/http"

func timelineTools() []Tool {
	return []Tool{
		{
			Name: "taiga_timeline_user", Title: "User timeline",
			Desc:   "Fetch the activity timeline of a user.",
			Tags:   []string{"timeline", "user", "list"},
			Method: http.MethodGet, Path: "/timeline/user/{id}",
			Params: []Param{
				pathID("id", "user id"),
				qInt("page", "result page"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_timeline_profile", Title: "Profile timeline",
			Desc:   "Fetch the activity timeline shown on a user's profile, including followed objects.",
			Tags:   []string{"timeline", "user", "list"},
			Method: http.MethodGet, Path: "/timeline/profile/{id}",
			Params: []Param{
				pathID("id", "user id"),
				qInt("page", "result page"),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_timeline_project", Title: "Project timeline",
			Desc:   "Fetch the activity timeline of a project.",
			Tags:   []string{"timeline", "project", "list"},
			Method: http.MethodGet, Path: "/timeline/project/{id}",
			Params: []Param{
				pathID("id", "project id"),
				qInt("page", "result page"),
			},
			ReadOnly: true, Idempotent: true,
		},
	}
}
