package http

import (
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

type Page struct {
	Path        string
	Title       string
	Description string
}

func DefaultPages() []Page {
	return []Page{
		{Path: "/", Title: "Overview", Description: "Cluster health, recent activity and alerts."},
		{Path: "/agents", Title: "Agents", Description: "Registered NeuraOps agents and their status."},
		{Path: "/workflows", Title: "Workflows", Description: "Automation workflows and their executions."},
		{Path: "/monitoring", Title: "Monitoring", Description: "System metrics collected by the control plane."},
		{Path: "/cli", Title: "CLI", Description: "Run NeuraOps commands from the browser."},
		{Path: "/documentation", Title: "Documentation", Description: "Guides and reference for NeuraOps."},
		{Path: "/settings", Title: "Settings", Description: "Dashboard and account preferences."},
	}
}

type PageHandler struct {
	page     Page
	renderer *Renderer
	routes   guard.Routes
}

func NewPageHandler(page Page, renderer *Renderer, routes guard.Routes) PageHandler {
	return PageHandler{
		page:     page,
		renderer: renderer,
		routes:   routes,
	}
}

func (h PageHandler) Method() string {
	return http.MethodGet
}

func (h PageHandler) Path() string {
	return h.page.Path
}

func (h PageHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		user, ok := UserFromContext(r.Context())
		if !ok {
			scope, hasScope := ScopeFromContext(r.Context())
			if !hasScope {
				return errNoScope
			}

			current, err := scope.Session.CurrentUser(r.Context())
			if err != nil {
				h.renderer.renderError(w, r, err, h.routes)
				return nil
			}
			if current == nil {
				w.Redirect(h.routes.LoginLocation(r.URL.Path), http.StatusTemporaryRedirect)
				return nil
			}
			user = current
		}

		w.SetHeader("Cache-Control", "no-store").SetHTMLBody(h.renderer.view(viewPage, viewData{
			Title:   h.page.Title,
			User:    user,
			Active:  h.page.Path,
			Message: h.page.Description,
		}))
		return nil
	}
}
