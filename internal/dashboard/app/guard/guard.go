package guard

import (
	"net/url"
	"strings"
)

type Class int

const (
	ClassPublic Class = iota
	ClassProtected
	ClassBypassed
)

func (c Class) String() string {
	switch c {
	case ClassProtected:
		return "protected"
	case ClassBypassed:
		return "bypassed"
	default:
		return "public"
	}
}

type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

const (
	DefaultLoginPath = "/login"
	DefaultHomePath  = "/"

	RedirectParam = "redirect"
)

type Decision struct {
	Action   Action
	Location string
}

// Routes classifies paths. Protected entries also cover their sub-paths, except the root which is matched exactly.
// Bypassed entries are prefixes matched on path segment boundaries.
type Routes struct {
	Login     string
	Home      string
	Public    []string
	Protected []string
	Bypassed  []string
}

func DefaultRoutes() Routes {
	return Routes{
		Login:     DefaultLoginPath,
		Home:      DefaultHomePath,
		Public:    []string{DefaultLoginPath},
		Protected: []string{"/", "/agents", "/workflows", "/monitoring", "/settings", "/documentation", "/cli"},
		Bypassed:  []string{"/api", "/static", "/_internal", "/favicon.ico", "/healthz", "/metrics"},
	}
}

func (r Routes) Classify(path string) Class {
	path = normalize(path)

	for _, prefix := range r.Bypassed {
		if matchesSubtree(path, prefix) {
			return ClassBypassed
		}
	}
	for _, public := range r.Public {
		if path == public {
			return ClassPublic
		}
	}
	for _, protected := range r.Protected {
		if protected == "/" {
			if path == "/" {
				return ClassProtected
			}
			continue
		}
		if matchesSubtree(path, protected) {
			return ClassProtected
		}
	}

	return ClassPublic
}

// Decide needs no I/O: only the path, the requested return target and token presence.
func (r Routes) Decide(path, returnTarget string, hasToken bool) Decision {
	class := r.Classify(path)
	if class == ClassBypassed {
		return Decision{Action: ActionAllow}
	}

	if r.IsLogin(path) {
		if hasToken {
			return Decision{Action: ActionRedirect, Location: r.SafeReturnTarget(returnTarget)}
		}
		return Decision{Action: ActionAllow}
	}

	if class == ClassProtected && !hasToken {
		return Decision{Action: ActionRedirect, Location: r.LoginLocation(path)}
	}

	return Decision{Action: ActionAllow}
}

// LoginLocation points to the login page, remembering where to go back after sign-in.
func (r Routes) LoginLocation(returnTarget string) string {
	target := r.SafeReturnTarget(returnTarget)
	if target == r.Home && returnTarget != r.Home {
		return r.Login
	}

	return r.Login + "?" + url.Values{RedirectParam: []string{target}}.Encode()
}

// IsLogin reports whether path is the login page, trailing slashes ignored.
func (r Routes) IsLogin(path string) bool {
	return normalize(path) == r.Login
}

// SafeReturnTarget keeps only local absolute paths and never points back to the login page.
func (r Routes) SafeReturnTarget(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.ContainsRune(target, '\\') {
		return r.Home
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return r.Home
	}

	if normalize(parsed.Path) == r.Login {
		return r.Home
	}

	return parsed.RequestURI()
}

func matchesSubtree(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}

	return path
}
