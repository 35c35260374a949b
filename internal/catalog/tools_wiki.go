package catalog

import "net/http"

func wikiTools() []Tool {
	id := pathID("id", "wiki page id")

	tools := []Tool{
		{
			Name: "taiga_wiki_pages_list", Title: "List wiki pages",
			Desc:   "List the wiki pages of a project.",
			Tags:   []string{"wiki", "list"},
			Method: http.MethodGet, Path: "/wiki",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_wiki_page_get", Title: "Get wiki page",
			Desc:   "Fetch one wiki page by id.",
			Tags:   []string{"wiki", "get"},
			Method: http.MethodGet, Path: "/wiki/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_wiki_page_get_by_slug", Title: "Get wiki page by slug",
			Desc:   "Fetch one wiki page by its project-scoped slug.",
			Tags:   []string{"wiki", "get"},
			Method: http.MethodGet, Path: "/wiki/by_slug",
			Params: []Param{
				qStr("slug", "page slug").req(),
				qInt("project", "project id").req(),
			},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_wiki_page_create", Title: "Create wiki page",
			Desc:   "Create a wiki page in a project.",
			Tags:   []string{"wiki", "create"},
			Method: http.MethodPost, Path: "/wiki",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("slug", "page slug").req(),
				bStr("content", "page content in Markdown").req(),
			},
		},
		{
			Name: "taiga_wiki_page_update", Title: "Update wiki page",
			Desc:   "Update the content of a wiki page. version must match the stored one.",
			Tags:   []string{"wiki", "update"},
			Method: http.MethodPatch, Path: "/wiki/{id}",
			Params: []Param{
				id,
				bInt("version", "current page version").req(),
				bStr("content", "page content in Markdown"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_wiki_page_delete", Title: "Delete wiki page",
			Desc:   "Delete a wiki page.",
			Tags:   []string{"wiki", "delete"},
			Method: http.MethodDelete, Path: "/wiki/{id}",
			Params: []Param{id}, Destructive: true,
		},
		{
			Name: "taiga_wiki_links_list", Title: "List wiki links",
			Desc:   "List the wiki navigation links of a project.",
			Tags:   []string{"wiki", "list"},
			Method: http.MethodGet, Path: "/wiki-links",
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_wiki_link_get", Title: "Get wiki link",
			Desc:   "Fetch one wiki navigation link by id.",
			Tags:   []string{"wiki", "get"},
			Method: http.MethodGet, Path: "/wiki-links/{id}",
			Params:   []Param{pathID("id", "wiki link id")},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_wiki_link_create", Title: "Create wiki link",
			Desc:   "Add a page to the wiki navigation of a project.",
			Tags:   []string{"wiki", "create"},
			Method: http.MethodPost, Path: "/wiki-links",
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("title", "link title").req(),
				bStr("href", "slug of the linked page").req(),
				bInt("order", "navigation order"),
			},
		},
		{
			Name: "taiga_wiki_link_delete", Title: "Delete wiki link",
			Desc:   "Remove a page from the wiki navigation.",
			Tags:   []string{"wiki", "delete"},
			Method: http.MethodDelete, Path: "/wiki-links/{id}",
			Params:      []Param{pathID("id", "wiki link id")},
			Destructive: true,
		},
	}

	tools = append(tools, watchTools("wiki_page", "/wiki")...)
	tools = append(tools, attachmentTools("wiki_page", "/wiki")...)
	return tools
}
