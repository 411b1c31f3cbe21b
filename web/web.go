// Package web serves the browser-facing pages. Every page goes through
// the resource client, the same boundary the JSON handlers use, so the
// pages render identically over the in-memory store or a remote API.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"tiketi/auth"
	"tiketi/client"
	"tiketi/clock"
	"tiketi/kenya"
	"tiketi/models"
	"tiketi/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Pages renders the server-side routes.
type Pages struct {
	api        *client.Client
	dash       *services.Dashboard
	processors map[models.PaymentMethod]services.PaymentProcessor
	clk        clock.Clock
	seq        *client.Sequence
	templates  map[string]*template.Template

	// featured is the newest events snapshot, shown on the landing
	// page. seq tokens keep a slow earlier fetch from overwriting a
	// newer one.
	featuredMu sync.RWMutex
	featured   []models.Event
}

func NewPages(api *client.Client, clk clock.Clock, processors ...services.PaymentProcessor) *Pages {
	byMethod := make(map[models.PaymentMethod]services.PaymentProcessor, len(processors))
	for _, p := range processors {
		byMethod[p.Method()] = p
	}
	return &Pages{
		api:        api,
		dash:       services.NewDashboard(api, clk),
		processors: byMethod,
		clk:        clk,
		seq:        &client.Sequence{},
		templates:  parseTemplates(),
	}
}

func parseTemplates() map[string]*template.Template {
	funcs := template.FuncMap{
		"currency":   kenya.FormatCurrency,
		"phone":      kenya.FormatPhoneNumber,
		"counties":   func() []string { return kenya.Counties },
		"categories": func() []string { return kenya.EventCategories },
		"until":      func(n int) []int { return make([]int, n) },
	}

	pages := []string{
		"home", "login", "register", "events", "event", "tickets",
		"dashboard", "create_event",
	}
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		out[name] = template.Must(template.New("layout").Funcs(funcs).ParseFS(
			templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl"))
	}
	// The print view stands alone, without the site chrome.
	out["ticket_print"] = template.Must(template.New("ticket_print").Funcs(funcs).ParseFS(
		templateFS, "templates/ticket_print.tmpl"))
	return out
}

// Routes returns the page router.
func (p *Pages) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(p.withSession)

	r.Get("/", p.Home)
	r.Get("/login", p.LoginForm)
	r.Post("/login", p.Login)
	r.Get("/register", p.RegisterForm)
	r.Post("/register", p.Register)
	r.Post("/logout", p.Logout)

	r.Get("/events", p.Events)
	r.Get("/events/{id}", p.Event)
	r.With(p.requireAuth).Post("/events/{id}/book", p.Book)

	r.With(p.requireAuth).Get("/tickets", p.Tickets)
	r.With(p.requireAuth).Get("/tickets/{id}/print", p.TicketPrint)
	r.With(p.requireAuth).Get("/dashboard", p.DashboardPage)
	r.With(p.requireAuth, p.requireRole(models.RoleOrganizer, models.RoleAdmin)).
		Get("/create-event", p.CreateEventForm)
	r.With(p.requireAuth, p.requireRole(models.RoleOrganizer, models.RoleAdmin)).
		Post("/create-event", p.CreateEvent)

	return r
}

type sessionCtxKey struct{}

// withSession loads the cookie-backed session and attaches both it and
// the bearer token to the request context.
func (p *Pages) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := auth.Load(auth.NewCookieStorage(w, r))
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		if sess.Authenticated() {
			ctx = client.WithToken(ctx, sess.Token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) auth.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(auth.Session)
	return sess
}

// requireAuth redirects unauthenticated visitors to the login page.
func (p *Pages) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole sends signed-in users of the wrong role back to their
// dashboard.
func (p *Pages) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFrom(r.Context())
			for _, role := range roles {
				if sess.User != nil && sess.User.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		})
	}
}

type pageData struct {
	Title   string
	Session auth.Session
	Notice  string
	Data    any
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	tmpl, ok := p.templates[name]
	if !ok {
		logrus.WithField("template", name).Error("unknown template")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := tmpl.ExecuteTemplate(w, "layout", pageData{
		Title:   title,
		Session: sessionFrom(r.Context()),
		Notice:  r.URL.Query().Get("notice"),
		Data:    data,
	})
	if err != nil {
		logrus.WithError(err).WithField("template", name).Error("render failed")
	}
}

// redirectNotice sends the visitor to path with a one-shot notice.
func redirectNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

// fail handles a page-level fetch error: an expired or rejected session
// is cleared and sent to login, a missing resource bounces back to the
// listing, anything else is a 500.
func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isUnauthorized(err):
		auth.NewCookieStorage(w, r).Clear()
		redirectNotice(w, r, "/login", "Your session has expired. Please sign in again.")
	case isNotFound(err):
		redirectNotice(w, r, "/events", "Event not found")
	default:
		logrus.WithError(err).Error("page failed")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}
