package catalog

import "context"

func cacheTools() []Tool {
	return []Tool{
		{
			Name: "taiga_cache_stats", Title: "Cache statistics",
			Desc:     "Report cache hits, misses, evictions, size, and hit rate.",
			Tags:     []string{"cache", "get"},
			Custom:   cacheStats,
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_cache_clear", Title: "Clear cache",
			Desc: "Drop cached responses. With project_id only entries scoped to " +
				"that project are removed; without it the whole cache is emptied.",
			Tags:   []string{"cache"},
			Custom: cacheClear, Idempotent: true,
			Params: []Param{
				bInt("project_id", "limit clearing to one project"),
			},
		},
	}
}

func cacheStats(_ context.Context, deps Deps, _ map[string]any) (any, error) {
	return deps.Client.Stats(), nil
}

func cacheClear(_ context.Context, deps Deps, args map[string]any) (any, error) {
	var cleared int
	if raw, ok := args["project_id"]; ok && raw != nil {
		if err := checkType(bInt("project_id", ""), raw); err != nil {
			return nil, err
		}
		id, _ := asInt(raw)
		cleared = deps.Client.ClearProject(id)
	} else {
		cleared = deps.Client.ClearAll()
	}
	return map[string]any{"cleared_entries": cleared}, nil
}
