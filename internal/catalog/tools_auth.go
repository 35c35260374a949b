package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/taigaio/taiga-mcp/internal/taiga"
)

func authTools() []Tool {
	return []Tool{
		{
			Name: "taiga_auth_login", Title: "Log in to Taiga",
			Desc: "Authenticate against Taiga with username and password, or bootstrap " +
				"the session from a pre-issued auth token.",
			Tags:   []string{"auth"},
			Custom: authLogin,
			Params: []Param{
				bStr("username", "Taiga username or email"),
				bStr("password", "account password"),
				bStr("token", "pre-issued auth token; bypasses password auth"),
			},
		},
		{
			Name: "taiga_auth_logout", Title: "Log out",
			Desc:   "Discard the current session and drop identity-scoped cache entries.",
			Tags:   []string{"auth"},
			Custom: authLogout, Idempotent: true,
		},
		{
			Name: "taiga_auth_status", Title: "Authentication status",
			Desc:     "Report whether a session is active and when it expires.",
			Tags:     []string{"auth", "get"},
			Custom:   authStatus,
			ReadOnly: true, Idempotent: true,
		},
	}
}

func authLogin(ctx context.Context, deps Deps, args map[string]any) (any, error) {
	username, _ := args["username"].(string)
	password, _ := args["password"].(string)
	token, _ := args["token"].(string)

	switch {
	case token != "":
		deps.Auth.Tokens().SetSession(taiga.Session{AccessToken: token})
		return deps.Client.Request(ctx, http.MethodGet, "/users/me", nil, nil)
	case username != "" && password != "":
		return deps.Auth.Login(ctx, username, password)
	default:
		return nil, &taiga.Error{
			Kind:    taiga.KindInvalidInput,
			Message: "provide either username and password, or a token",
		}
	}
}

func authLogout(_ context.Context, deps Deps, _ map[string]any) (any, error) {
	deps.Client.Logout(deps.Auth)
	return map[string]any{"logged_out": true}, nil
}

func authStatus(_ context.Context, deps Deps, _ map[string]any) (any, error) {
	authenticated, expiresAt := deps.Auth.Tokens().Status()
	out := map[string]any{"authenticated": authenticated}
	if expiresAt != nil && !expiresAt.IsZero() {
		out["expires_at"] = expiresAt.UTC().Format(time.RFC3339)
	}
	return out, nil
}
