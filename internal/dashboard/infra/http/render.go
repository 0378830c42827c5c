package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	viewLogin     = "login"
	viewPage      = "page"
	viewAuthError = "autherror"
	viewError     = "error"
)

type navItem struct {
	Path  string
	Title string
}

type viewData struct {
	Title     string
	User      *domain.User
	Nav       []navItem
	Active    string
	Message   string
	Error     string
	Redirect  string
	Username  string
	Retry     string
	LoginPath string
}

type Renderer struct {
	views map[string]*template.Template
	nav   []navItem
}

func NewRenderer(pages []Page) (*Renderer, error) {
	views := make(map[string]*template.Template)
	for _, name := range []string{viewLogin, viewPage, viewAuthError, viewError} {
		tpl, err := template.ParseFS(templateFS, "templates/layout.html", fmt.Sprintf("templates/%s.html", name))
		if err != nil {
			return nil, fmt.Errorf("parse %s view: %w", name, err)
		}
		views[name] = tpl
	}

	nav := make([]navItem, 0, len(pages))
	for _, page := range pages {
		nav = append(nav, navItem{Path: page.Path, Title: page.Title})
	}

	return &Renderer{views: views, nav: nav}, nil
}

func (r *Renderer) view(name string, data viewData) func(io.Writer) error {
	data.Nav = r.nav
	return func(out io.Writer) error {
		return r.views[name].ExecuteTemplate(out, "layout", data)
	}
}

// renderError shows the "Authentication Required" view for 401 and 403, a generic error view otherwise.
func (r *Renderer) renderError(w pkghttp.ResponseWriter, req *http.Request, err error, routes guard.Routes) {
	data := viewData{
		Title:     "Error",
		Error:     err.Error(),
		Retry:     req.URL.RequestURI(),
		LoginPath: routes.LoginLocation(req.URL.Path),
	}

	apiErr, isAPIErr := pkghttp.AsAPIError(err)
	if isAPIErr && pkghttp.IsAuthError(err) {
		data.Title = "Authentication Required"
		data.Error = apiErr.Message
		w.SetStatusCode(apiErr.Status).SetHTMLBody(r.view(viewAuthError, data))
		return
	}

	w.SetStatusCode(http.StatusBadGateway).SetHTMLBody(r.view(viewError, data))
}

func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Errorf("static assets: %w", err))
	}

	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
