// Package catalog declares every tool, resource, and prompt the server
// exposes as data: a descriptor table per category, one generic handler
// that binds arguments to an upstream request, and a registration pass
// onto the MCP server.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taigaio/taiga-mcp/internal/middleware"
	"github.com/taigaio/taiga-mcp/internal/taiga"
)

// Param placement within the upstream request.
const (
	inPath  = "path"
	inQuery = "query"
	inBody  = "body"
)

// Param describes one input field of a tool: its JSON-schema type, where
// it lands in the upstream request, and whether it is required.
type Param struct {
	Name     string
	Type     string // string, integer, number, boolean, array, object
	In       string
	Desc     string
	Required bool
	Items    string // element type when Type is array
	Enum     []string
}

func (p Param) req() Param { p.Required = true; return p }

func pathID(name, desc string) Param {
	return Param{Name: name, Type: "integer", In: inPath, Desc: desc, Required: true}
}

func pathStr(name, desc string) Param {
	return Param{Name: name, Type: "string", In: inPath, Desc: desc, Required: true}
}

func qInt(name, desc string) Param {
	return Param{Name: name, Type: "integer", In: inQuery, Desc: desc}
}

func qStr(name, desc string) Param {
	return Param{Name: name, Type: "string", In: inQuery, Desc: desc}
}

func qBool(name, desc string) Param {
	return Param{Name: name, Type: "boolean", In: inQuery, Desc: desc}
}

func bInt(name, desc string) Param {
	return Param{Name: name, Type: "integer", In: inBody, Desc: desc}
}

func bStr(name, desc string) Param {
	return Param{Name: name, Type: "string", In: inBody, Desc: desc}
}

func bBool(name, desc string) Param {
	return Param{Name: name, Type: "boolean", In: inBody, Desc: desc}
}

func bArr(name, items, desc string) Param {
	return Param{Name: name, Type: "array", In: inBody, Desc: desc, Items: items}
}

func bObj(name, desc string) Param {
	return Param{Name: name, Type: "object", In: inBody, Desc: desc}
}

// CustomFunc implements a tool that does not map onto a single upstream
// REST call (auth bootstrap, cache management).
type CustomFunc func(ctx context.Context, deps Deps, args map[string]any) (any, error)

// Tool is one entry of the catalog. REST-backed tools declare Method and
// Path (a template with {param} segments); management tools declare
// Custom instead.
type Tool struct {
	Name        string
	Title       string
	Desc        string
	Tags        []string
	Method      string
	Path        string
	Params      []Param
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	Custom      CustomFunc
}

// Deps is everything a handler may need. Chain is the middleware stack
// applied around every invocation.
type Deps struct {
	Client *taiga.CachedClient
	Auth   *taiga.Client
	Chain  func(middleware.Handler) middleware.Handler
}

// Register adds the full catalog to the MCP server. Duplicate names are
// a programming error and abort startup.
func Register(s *server.MCPServer, deps Deps) error {
	if deps.Chain == nil {
		deps.Chain = func(h middleware.Handler) middleware.Handler { return h }
	}

	seen := make(map[string]struct{})
	for _, t := range Tools() {
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate tool registration: %q", t.Name)
		}
		seen[t.Name] = struct{}{}

		mcpTool := mcp.NewToolWithRawSchema(t.Name, t.Desc, t.inputSchema())
		mcpTool.Annotations = mcp.ToolAnnotation{
			Title:           t.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(t.ReadOnly),
			DestructiveHint: mcp.ToBoolPtr(t.Destructive),
			IdempotentHint:  mcp.ToBoolPtr(t.Idempotent),
			OpenWorldHint:   mcp.ToBoolPtr(true),
		}
		s.AddTool(mcpTool, toolHandler(t, deps))
	}

	registerResources(s, deps)
	registerPrompts(s, deps)
	return nil
}

// inputSchema renders the declared params as a JSON schema object.
func (t Tool) inputSchema() json.RawMessage {
	props := make(map[string]any, len(t.Params))
	var required []string
	for _, p := range t.Params {
		prop := map[string]any{"type": p.Type, "description": p.Desc}
		if p.Type == "array" {
			items := p.Items
			if items == "" {
				items = "integer"
			}
			prop["items"] = map[string]any{"type": items}
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("catalog: schema for %s: %v", t.Name, err))
	}
	return raw
}

// toolHandler wires one descriptor: decode arguments, run the middleware
// chain around the upstream call, render the result.
func toolHandler(t Tool, deps Deps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	core := func(ctx context.Context, inv *middleware.Invocation) (any, error) {
		if t.Custom != nil {
			return t.Custom(ctx, deps, inv.Args)
		}
		path, query, body, err := bindArgs(t, inv.Args)
		if err != nil {
			return nil, err
		}
		return deps.Client.Request(ctx, t.Method, path, query, body)
	}
	h := deps.Chain(core)

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv := &middleware.Invocation{
			Kind:       middleware.KindTool,
			Name:       t.Name,
			Args:       req.GetArguments(),
			ReadOnly:   t.ReadOnly,
			Idempotent: t.Idempotent || t.ReadOnly,
		}
		v, err := h(ctx, inv)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := renderResult(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func renderResult(v any) (string, error) {
	switch r := v.(type) {
	case nil:
		return "null", nil
	case json.RawMessage:
		return string(r), nil
	case string:
		return r, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
		return string(b), nil
	}
}

// bindArgs validates the arguments against the declared params and
// splits them into the upstream path, query, and body.
func bindArgs(t Tool, args map[string]any) (string, url.Values, map[string]any, error) {
	path := t.Path
	query := url.Values{}
	var body map[string]any

	for _, p := range t.Params {
		v, ok := args[p.Name]
		if !ok || v == nil {
			if p.Required {
				return "", nil, nil, &taiga.Error{
					Kind:    taiga.KindInvalidInput,
					Message: "missing required argument",
					Detail:  p.Name,
				}
			}
			continue
		}
		if err := checkType(p, v); err != nil {
			return "", nil, nil, err
		}

		switch p.In {
		case inPath:
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(scalarString(v)))
		case inQuery:
			query.Set(p.Name, scalarString(v))
		default:
			if body == nil {
				body = make(map[string]any)
			}
			body[p.Name] = v
		}
	}

	if i := strings.IndexByte(path, '{'); i >= 0 {
		return "", nil, nil, &taiga.Error{
			Kind:    taiga.KindInvalidInput,
			Message: "unresolved path parameter",
			Detail:  path[i:],
		}
	}
	return path, query, body, nil
}

func checkType(p Param, v any) error {
	ok := false
	switch p.Type {
	case "integer", "number":
		switch n := v.(type) {
		case float64, int, int64, json.Number:
			ok = true
			if p.Type == "integer" {
				if f, isFloat := n.(float64); isFloat && f != float64(int64(f)) {
					ok = false
				}
			}
		}
	case "string":
		_, ok = v.(string)
	case "boolean":
		_, ok = v.(bool)
	case "array":
		_, ok = v.([]any)
	case "object":
		_, ok = v.(map[string]any)
	default:
		ok = true
	}
	if !ok {
		return &taiga.Error{
			Kind:    taiga.KindInvalidInput,
			Message: fmt.Sprintf("argument must be of type %s", p.Type),
			Detail:  p.Name,
		}
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func scalarString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case json.Number:
		return n.String()
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprint(n)
	}
}
