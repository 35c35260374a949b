package catalog

import "net/http"

func webhookTools() []Tool {
	id := pathID("id", "webhook id")

	return []Tool{
		{
			Name: "taiga_webhooks_list", Title: "List webhooks",
			Desc:   "List the webhooks of a project.",
			Tags:   []string{"webhook", "list"},
			Method: http.MethodGet, Path: "/webhooks",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_webhook_get", Title: "Get webhook",
			Desc:   "Fetch one webhook by id.",
			Tags:   []string{"webhook", "get"},
			Method: http.MethodGet, Path: "/webhooks/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_webhook_create", Title: "Create webhook",
			Desc:   "Register a webhook on a project.",
			Tags:   []string{"webhook", "create"},
			Method: http.MethodPost, Path: "/webhooks",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("name", "webhook name").req(),
				bStr("url", "endpoint to notify").req(),
				bStr("key", "shared secret used to sign payloads").req(),
			},
		},
		{
			Name: "taiga_webhook_update", Title: "Update webhook",
			Desc:   "Update fields of a webhook.",
			Tags:   []string{"webhook", "update"},
			Method: http.MethodPatch, Path: "/webhooks/{id}",
			Params: []Param{
				id,
				bStr("name", "webhook name"),
				bStr("url", "endpoint to notify"),
				bStr("key", "shared secret used to sign payloads"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_webhook_delete", Title: "Delete webhook",
			Desc:   "Delete a webhook.",
			Tags:   []string{"webhook", "delete"},
			Method: http.MethodDelete, Path: "/webhooks/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_webhook_test", Title: "Test webhook",
			Desc:   "Send a test payload through a webhook.",
			Tags:   []string{"webhook"},
			Method: http.MethodPost, Path: "/webhooks/{id}/test",
			Params: []Param{id}, Idempotent: true,
		},
		{
			Name: "taiga_webhook_logs_list", Title: "List webhook deliveries",
			Desc:   "List the recent deliveries of a webhook.",
			Tags:   []string{"webhook", "list"},
			Method: http.MethodGet, Path: "/webhooklogs",
			Params:   []Param{qInt("webhook", "webhook id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_webhook_log_get", Title: "Get webhook delivery",
			Desc:   "Fetch one webhook delivery record by id.",
			Tags:   []string{"webhook", "get"},
			Method: http.MethodGet, Path: "/webhooklogs/{id}",
			Params:   []Param{pathID("id", "webhook log id")},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_webhook_log_resend", Title: "Resend webhook delivery",
			Desc:   "Resend a failed webhook delivery.",
			Tags:   []string{"webhook"},
			Method: http.MethodPost, Path: "/webhooklogs/{id}/resend",
			Params:     []Param{pathID("id", "webhook log id")},
			Idempotent: true,
		},
	}
}
