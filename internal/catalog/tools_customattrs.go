package catalog

import "net/http"

// customAttributeTools covers the custom-attribute definitions of each
// entity kind plus the per-entity attribute values.
func customAttributeTools() []Tool {
	var all []Tool
	families := []struct {
		entity     string // e.g. userstory
		defsBase   string // e.g. /userstory-custom-attributes
		valuesBase string // e.g. /userstories/custom-attributes-values
	}{
		{"userstory", "/userstory-custom-attributes", "/userstories/custom-attributes-values"},
		{"task", "/task-custom-attributes", "/tasks/custom-attributes-values"},
		{"issue", "/issue-custom-attributes", "/issues/custom-attributes-values"},
		{"epic", "/epic-custom-attributes", "/epics/custom-attributes-values"},
	}

	for _, f := range families {
		all = append(all, customAttrDefTools(f.entity, f.defsBase)...)
		all = append(all, customAttrValueTools(f.entity, f.valuesBase)...)
	}
	return all
}

func customAttrDefTools(entity, base string) []Tool {
	id := pathID("id", "custom attribute id")
	what := entity + " custom attribute"
	typeEnum := []string{"text", "multiline", "richtext", "date", "url", "dropdown", "checkbox", "number"}

	return []Tool{
		{
			Name: "taiga_" + entity + "_custom_attributes_list", Title: "List " + what + "s",
			Desc:   "List the " + what + " definitions of a project.",
			Tags:   []string{entity, "custom-attribute", "list"},
			Method: http.MethodGet, Path: base,
			Params:   []Param{qInt("project", "project id").req()},
			ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_custom_attribute_get", Title: "Get " + what,
			Desc:   "Fetch one " + what + " definition by id.",
			Tags:   []string{entity, "custom-attribute", "get"},
			Method: http.MethodGet, Path: base + "/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_custom_attribute_create", Title: "Create " + what,
			Desc:   "Define a custom attribute for the " + entity + "s of a project.",
			Tags:   []string{entity, "custom-attribute", "create"},
			Method: http.MethodPost, Path: base,
			Params: []Param{
				bInt("project", "project id").req(),
				bStr("name", "attribute name").req(),
				bStr("description", "attribute description"),
				{Name: "type", Type: "string", In: inBody, Desc: "field type", Enum: typeEnum},
				bStr("extra", "extra settings, e.g. dropdown choices"),
				bInt("order", "sort order"),
			},
		},
		{
			Name: "taiga_" + entity + "_custom_attribute_update", Title: "Update " + what,
			Desc:   "Update a " + what + " definition.",
			Tags:   []string{entity, "custom-attribute", "update"},
			Method: http.MethodPatch, Path: base + "/{id}",
			Params: []Param{
				id,
				bStr("name", "attribute name"),
				bStr("description", "attribute description"),
				bStr("extra", "extra settings, e.g. dropdown choices"),
				bInt("order", "sort order"),
			},
			Idempotent: true,
		},
		{
			Name: "taiga_" + entity + "_custom_attribute_delete", Title: "Delete " + what,
			Desc:   "Delete a " + what + " definition and every stored value.",
			Tags:   []string{entity, "custom-attribute", "delete"},
			Method: http.MethodDelete, Path: base + "/{id}",
			Params: []Param{id}, Destructive: true,
		},
	}
}

func customAttrValueTools(entity, base string) []Tool {
	id := pathID("id", entity+" id")

	return []Tool{
		{
			Name:   "taiga_" + entity + "_custom_attributes_values_get",
			Title:  "Get " + entity + " custom attribute values",
			Desc:   "Fetch the custom attribute values of a " + entity + ".",
			Tags:   []string{entity, "custom-attribute", "get"},
			Method: http.MethodGet, Path: base + "/{id}",
			Params: []Param{id}, ReadOnly: true, Idempotent: true,
		},
		{
			Name:   "taiga_" + entity + "_custom_attributes_values_update",
			Title:  "Update " + entity + " custom attribute values",
			Desc:   "Update the custom attribute values of a " + entity + ". version must match the stored one.",
			Tags:   []string{entity, "custom-attribute", "update"},
			Method: http.MethodPatch, Path: base + "/{id}",
			Params: []Param{
				id,
				bInt("version", "current values version").req(),
				bObj("attributes_values", "attribute id to value mapping").req(),
			},
			Idempotent: true,
		},
	}
}
