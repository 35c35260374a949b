package catalog

import "net/http"

func membershipTools() []Tool {
	id := pathID("id", "membership id")

	return []Tool{
		{
			Name: "taiga_memberships_list", Title: "List memberships",
			Desc:   "List the memberships of a project.",
			Tags:   []string{"membership", "list"},
			Method: http.MethodGet, Path: "/memberships",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_membership_get", Title: "Get membership",
			Desc:   "Fetch one membership by id.",
			Tags:   []string{"membership", "get"},
			Method: http.MethodGet, Path: "/memberships/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_membership_create", Title: "Create membership",
			Desc:   "Invite a user to a project with a role.",
			Tags:   []string{"membership", "create"},
			Method: http.MethodPost, Path: "/memberships",
			Params: []Param{
				bInt("project", "project id").req(),
				bInt("role", "role id").req(),
				bStr("username", "username or email to invite").req(),
			},
		},
		{
			Name: "taiga_memberships_bulk_create", Title: "Bulk create memberships",
			Desc:   "Invite several users to a project at once.",
			Tags:   []string{"membership", "create", "bulk"},
			Method: http.MethodPost, Path: "/memberships/bulk_create",
			Params: []Param{
				bInt("project_id", "project id").req(),
				bArr("bulk_memberships", "object", "objects with role_id and username").req(),
				bStr("invitation_extra_text", "text appended to the invitation email"),
			},
		},
		{
			Name: "taiga_membership_update", Title: "Update membership",
			Desc:   "Change the role of a membership.",
			Tags:   []string{"membership", "update"},
			Method: http.MethodPatch, Path: "/memberships/{id}",
			Params: []Param{
				id,
				bInt("role", "role id").req(),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_membership_delete", Title: "Delete membership",
			Desc:   "Remove a member from a project.",
			Tags:   []string{"membership", "delete"},
			Method: http.MethodDelete, Path: "/memberships/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_membership_resend_invitation", Title: "Resend invitation",
			Desc:   "Resend the invitation email for a pending membership.",
			Tags:   []string{"membership", "update"},
			Method: http.MethodPost, Path: "/memberships/{id}/resend_invitation",
			Params: []Param{id}, Idempotent: true,
		},
	}
}
