package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
)

func TestRoutes_Classify(t *testing.T) {
	routes := guard.DefaultRoutes()

	tests := []struct {
		path   string
		expect guard.Class
	}{
		{"/login", guard.ClassPublic},
		{"/login/", guard.ClassPublic},
		{"/", guard.ClassProtected},
		{"/agents", guard.ClassProtected},
		{"/agents/42", guard.ClassProtected},
		{"/workflows", guard.ClassProtected},
		{"/monitoring", guard.ClassProtected},
		{"/settings", guard.ClassProtected},
		{"/documentation/getting-started", guard.ClassProtected},
		{"/cli", guard.ClassProtected},
		{"/api/session", guard.ClassBypassed},
		{"/api", guard.ClassBypassed},
		{"/static/app.css", guard.ClassBypassed},
		{"/_internal/image", guard.ClassBypassed},
		{"/favicon.ico", guard.ClassBypassed},
		{"/healthz", guard.ClassBypassed},
		{"/apiary", guard.ClassPublic},
		{"/agentsmith", guard.ClassPublic},
		{"/about", guard.ClassPublic},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expect, routes.Classify(tt.path))
		})
	}
}

func TestRoutes_Decide_ProtectedWithoutTokenRedirectsToLogin(t *testing.T) {
	routes := guard.DefaultRoutes()

	for _, path := range []string{"/agents", "/workflows", "/monitoring", "/settings", "/documentation", "/cli"} {
		decision := routes.Decide(path, "", false)
		assert.Equal(t, guard.ActionRedirect, decision.Action, path)
		assert.Equal(t, "/login?redirect="+escapeSlash(path), decision.Location, path)
	}

	decision := routes.Decide("/", "", false)
	assert.Equal(t, guard.Decision{Action: guard.ActionRedirect, Location: "/login?redirect=%2F"}, decision)
}

func TestRoutes_LoginLocation(t *testing.T) {
	routes := guard.DefaultRoutes()

	tests := []struct {
		name   string
		target string
		expect string
	}{
		{name: "home_is_kept", target: "/", expect: "/login?redirect=%2F"},
		{name: "page_with_query", target: "/agents?tab=logs", expect: "/login?redirect=%2Fagents%3Ftab%3Dlogs"},
		{name: "empty_target", target: "", expect: "/login"},
		{name: "foreign_target", target: "//evil.example", expect: "/login"},
		{name: "login_loop", target: "/login/", expect: "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, routes.LoginLocation(tt.target))
		})
	}
}

func TestRoutes_IsLogin(t *testing.T) {
	routes := guard.DefaultRoutes()

	assert.True(t, routes.IsLogin("/login"))
	assert.True(t, routes.IsLogin("/login/"))
	assert.False(t, routes.IsLogin("/loginx"))
	assert.False(t, routes.IsLogin("/"))
}

func TestRoutes_Decide_ProtectedWithTokenAllowed(t *testing.T) {
	decision := guard.DefaultRoutes().Decide("/agents", "", true)
	assert.Equal(t, guard.ActionAllow, decision.Action)
}

func TestRoutes_Decide_LoginWithToken(t *testing.T) {
	routes := guard.DefaultRoutes()

	tests := []struct {
		name   string
		target string
		expect string
	}{
		{name: "home_by_default", target: "", expect: "/"},
		{name: "requested_page", target: "/workflows?tab=runs", expect: "/workflows?tab=runs"},
		{name: "external_rejected", target: "https://evil.example", expect: "/"},
		{name: "protocol_relative_rejected", target: "//evil.example", expect: "/"},
		{name: "backslash_rejected", target: "/\\evil.example", expect: "/"},
		{name: "login_loop_rejected", target: "/login?redirect=/login", expect: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := routes.Decide("/login", tt.target, true)
			assert.Equal(t, guard.Decision{Action: guard.ActionRedirect, Location: tt.expect}, decision)
		})
	}
}

func TestRoutes_Decide_LoginWithoutTokenAllowed(t *testing.T) {
	decision := guard.DefaultRoutes().Decide("/login", "/agents", false)
	assert.Equal(t, guard.ActionAllow, decision.Action)
}

func TestRoutes_Decide_BypassedAlwaysAllowed(t *testing.T) {
	routes := guard.DefaultRoutes()

	for _, path := range []string{"/api/auth/me", "/static/app.css", "/favicon.ico", "/_internal/x", "/metrics"} {
		for _, hasToken := range []bool{true, false} {
			assert.Equal(t, guard.ActionAllow, routes.Decide(path, "", hasToken).Action, path)
		}
	}
}

func TestRoutes_Decide_UnlistedPathAllowed(t *testing.T) {
	assert.Equal(t, guard.ActionAllow, guard.DefaultRoutes().Decide("/about", "", false).Action)
}

func escapeSlash(path string) string {
	result := ""
	for _, r := range path {
		if r == '/' {
			result += "%2F"
			continue
		}
		result += string(r)
	}
	return result
}
