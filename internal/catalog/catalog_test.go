package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

var toolNameRe = regexp.MustCompile(`^taiga_[a-z0-9_]+$`)

func TestTools_NamesUniqueAndWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range Tools() {
		if !toolNameRe.MatchString(tool.Name) {
			t.Errorf("tool %q: name not lowercase snake_case with taiga_ prefix", tool.Name)
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
	}
	if len(seen) < 200 {
		t.Fatalf("catalog has %d tools; want at least 200", len(seen))
	}
}

func TestTools_DescriptorConsistency(t *testing.T) {
	for _, tool := range Tools() {
		if tool.Desc == "" {
			t.Errorf("tool %q: missing description", tool.Name)
		}
		if len(tool.Tags) == 0 {
			t.Errorf("tool %q: missing tags", tool.Name)
		}
		if tool.Custom != nil {
			continue
		}
		if tool.Method == "" || tool.Path == "" {
			t.Errorf("tool %q: REST tool without method or path", tool.Name)
			continue
		}
		if tool.ReadOnly && tool.Method != "GET" {
			t.Errorf("tool %q: read-only but method %s", tool.Name, tool.Method)
		}
		if tool.ReadOnly && tool.Destructive {
			t.Errorf("tool %q: both read-only and destructive", tool.Name)
		}
		// Destructive operations are never reissued on transient
		// failures, so they must not carry the idempotent hint.
		if tool.Destructive && tool.Idempotent {
			t.Errorf("tool %q: destructive tools must not be marked idempotent", tool.Name)
		}

		// Every {param} in the path must be covered by a required
		// path param, or dispatch would build a broken URL.
		declared := make(map[string]bool)
		for _, p := range tool.Params {
			if p.In == inPath {
				if !p.Required {
					t.Errorf("tool %q: optional path param %q", tool.Name, p.Name)
				}
				declared[p.Name] = true
			}
		}
		for _, m := range regexp.MustCompile(`\{([a-z_]+)\}`).FindAllStringSubmatch(tool.Path, -1) {
			if !declared[m[1]] {
				t.Errorf("tool %q: path references undeclared param %q", tool.Name, m[1])
			}
		}
	}
}

func TestInputSchema(t *testing.T) {
	tool := Tool{
		Name: "taiga_example",
		Params: []Param{
			bStr("subject", "the subject").req(),
			bArr("tags", "string", "tag names"),
			qInt("project", "project id"),
		},
	}

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	if err := json.Unmarshal(tool.inputSchema(), &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if schema.Type != "object" {
		t.Fatalf("schema type = %q; want object", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "subject" {
		t.Fatalf("required = %v; want [subject]", schema.Required)
	}
	if schema.Properties["tags"]["items"] == nil {
		t.Fatal("array property missing items")
	}
	if schema.Properties["project"]["description"] != "project id" {
		t.Fatal("property description not carried into schema")
	}
}

func TestBindArgs(t *testing.T) {
	tool := Tool{
		Name:   "taiga_userstory_update",
		Method: "PATCH", Path: "/userstories/{id}",
		Params: []Param{
			pathID("id", "story id"),
			qBool("dry_run", "do not persist"),
			bStr("subject", "story subject"),
			bInt("version", "story version").req(),
		},
	}

	path, query, body, err := bindArgs(tool, map[string]any{
		"id":      float64(42),
		"dry_run": true,
		"subject": "new subject",
		"version": float64(3),
	})
	if err != nil {
		t.Fatalf("bindArgs: %v", err)
	}
	if path != "/userstories/42" {
		t.Fatalf("path = %q", path)
	}
	if query.Get("dry_run") != "true" {
		t.Fatalf("query = %v", query)
	}
	if body["subject"] != "new subject" || body["version"] != float64(3) {
		t.Fatalf("body = %v", body)
	}
}

func TestBindArgs_MissingRequired(t *testing.T) {
	tool := Tool{
		Name:   "taiga_userstory_get",
		Method: "GET", Path: "/userstories/{id}",
		Params: []Param{pathID("id", "story id")},
	}

	_, _, _, err := bindArgs(tool, map[string]any{})
	if taiga.KindOf(err) != taiga.KindInvalidInput {
		t.Fatalf("kind = %v; want invalid_input", taiga.KindOf(err))
	}
	var te *taiga.Error
	if !errors.As(err, &te) || te.Detail != "id" {
		t.Fatalf("error does not carry the field path: %v", err)
	}
}

func TestBindArgs_TypeMismatch(t *testing.T) {
	tool := Tool{
		Name:   "taiga_userstory_create",
		Method: "POST", Path: "/userstories",
		Params: []Param{bInt("project", "project id").req()},
	}

	_, _, _, err := bindArgs(tool, map[string]any{"project": "seven"})
	if taiga.KindOf(err) != taiga.KindInvalidInput {
		t.Fatalf("kind = %v; want invalid_input", taiga.KindOf(err))
	}
}

func TestBindArgs_FractionalInteger(t *testing.T) {
	tool := Tool{
		Name:   "taiga_userstory_get",
		Method: "GET", Path: "/userstories/{id}",
		Params: []Param{pathID("id", "story id")},
	}

	_, _, _, err := bindArgs(tool, map[string]any{"id": 4.5})
	if taiga.KindOf(err) != taiga.KindInvalidInput {
		t.Fatalf("kind = %v; want invalid_input", taiga.KindOf(err))
	}
}

// recordingDoer captures the upstream request a handler produced.
type recordingDoer struct {
	method string
	path   string
	query  url.Values
	body   any
	result json.RawMessage
	err    error
}

func (d *recordingDoer) Request(_ context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	d.method, d.path, d.query, d.body = method, path, query, body
	if d.err != nil {
		return nil, d.err
	}
	return d.result, nil
}

func testDeps(doer taiga.Doer) Deps {
	return Deps{
		Client: taiga.NewCachedClient(doer, taiga.NewPolicy(nil), 16, time.Minute, false),
	}
}

func TestToolHandler_RoutesToUpstream(t *testing.T) {
	doer := &recordingDoer{result: json.RawMessage(`{"id": 42, "subject": "s"}`)}
	deps := testDeps(doer)

	var tool Tool
	for _, c := range Tools() {
		if c.Name == "taiga_userstory_get" {
			tool = c
		}
	}
	h := toolHandler(tool, deps)

	req := mcp.CallToolRequest{}
	req.Params.Name = tool.Name
	req.Params.Arguments = map[string]any{"id": float64(42)}

	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	if doer.method != "GET" || doer.path != "/userstories/42" {
		t.Fatalf("upstream call = %s %s", doer.method, doer.path)
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok || !strings.Contains(tc.Text, `"id": 42`) {
		t.Fatalf("result content = %+v", res.Content[0])
	}
}

func TestToolHandler_ErrorBecomesToolError(t *testing.T) {
	doer := &recordingDoer{err: &taiga.Error{Kind: taiga.KindNotFound, Message: "userstory not found"}}
	deps := testDeps(doer)

	var tool Tool
	for _, c := range Tools() {
		if c.Name == "taiga_userstory_get" {
			tool = c
		}
	}
	h := toolHandler(tool, deps)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"id": float64(1)}

	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("protocol error instead of tool error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected IsError result")
	}
}

func TestCacheTools(t *testing.T) {
	deps := testDeps(&recordingDoer{result: json.RawMessage(`{}`)})

	v, err := cacheStats(context.Background(), deps, nil)
	if err != nil {
		t.Fatalf("cacheStats: %v", err)
	}
	if _, err := json.Marshal(v); err != nil {
		t.Fatalf("stats not encodable: %v", err)
	}

	out, err := cacheClear(context.Background(), deps, map[string]any{})
	if err != nil {
		t.Fatalf("cacheClear: %v", err)
	}
	m := out.(map[string]any)
	if _, ok := m["cleared_entries"]; !ok {
		t.Fatalf("cacheClear result = %v", out)
	}

	if _, err := cacheClear(context.Background(), deps, map[string]any{"project_id": "x"}); taiga.KindOf(err) != taiga.KindInvalidInput {
		t.Fatalf("non-integer project_id: kind = %v", taiga.KindOf(err))
	}
}

func TestRegister_DetectsDuplicates(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)
	deps := testDeps(&recordingDoer{result: json.RawMessage(`{}`)})

	if err := Register(s, deps); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestPrompts_PureAndComplete(t *testing.T) {
	for _, p := range prompts() {
		if p.name == "" || p.description == "" || p.render == nil {
			t.Fatalf("prompt %+v incomplete", p.name)
		}
		args := map[string]string{}
		for _, a := range p.args {
			args[a.Name] = "value"
		}
		text, err := p.render(args)
		if err != nil {
			t.Fatalf("prompt %s: %v", p.name, err)
		}
		if !strings.Contains(text, "value") {
			t.Fatalf("prompt %s does not interpolate its arguments", p.name)
		}
	}
}

func TestResourceURIs(t *testing.T) {
	if m := projectURI.FindStringSubmatch("taiga://projects/42"); m == nil || m[1] != "42" {
		t.Fatalf("project URI did not match: %v", m)
	}
	if projectURI.MatchString("taiga://projects/42/stats") {
		t.Fatal("project URI must not match the stats URI")
	}
	if m := projectStatsURI.FindStringSubmatch("taiga://projects/7/stats"); m == nil || m[1] != "7" {
		t.Fatalf("stats URI did not match: %v", m)
	}
}
