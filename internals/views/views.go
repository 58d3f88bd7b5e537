// Package views renders the HTML pages served by every variant. Templates are
// embedded and escape interpolated values unless legacy mode is enabled.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"Hello-Servers/internals/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl     *template.Template
	legacy   bool
	port     int
	now      func() time.Time
	accounts []models.Account
}

// NewRenderer parses the embedded templates. With legacy set, the greeting
// name and the token are written into the page without escaping.
func NewRenderer(port int, legacy bool) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		tmpl:     tmpl,
		legacy:   legacy,
		port:     port,
		now:      time.Now,
		accounts: models.DemoAccounts(),
	}, nil
}

// WithClock replaces the time source shown on pages.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

type LoginPage struct {
	Title   string
	Heading string
	Action  string
	Error   string
	Footer  string
}

type GreetingPage struct {
	Title      string
	Heading    string
	User       models.User
	Name       string // optional override for the display name
	ProofParam string // query parameter carrying the identity proof
	Proof      string
	ShowProof  bool
	Footer     string
}

type HelloPage struct {
	Title    string
	Heading  string
	Name     string
	ShowForm bool
}

func (r *Renderer) Login(w http.ResponseWriter, status int, page LoginPage) error {
	return r.render(w, status, "login", struct {
		LoginPage
		Accounts []models.Account
		Now      string
	}{page, r.accounts, r.timestamp()})
}

func (r *Renderer) Greeting(w http.ResponseWriter, page GreetingPage) error {
	greeting := page.User.Name
	if page.Name != "" {
		greeting = page.Name
	}
	return r.render(w, http.StatusOK, "greeting", struct {
		GreetingPage
		Greeting   any
		NameValue  string
		ProofValue string
		Proof      any
		LogoutURL  string
		Now        string
		Port       int
	}{
		GreetingPage: page,
		Greeting:     r.text(greeting),
		NameValue:    page.Name,
		ProofValue:   page.Proof,
		Proof:        r.text(page.Proof),
		LogoutURL:    logoutURL(page.ProofParam, page.Proof),
		Now:          r.timestamp(),
		Port:         r.port,
	})
}

func (r *Renderer) Hello(w http.ResponseWriter, page HelloPage) error {
	greeting := page.Name
	if greeting == "" {
		greeting = "World"
	}
	return r.render(w, http.StatusOK, "hello", struct {
		HelloPage
		Greeting  any
		NameValue string
		Now       string
		Port      int
	}{page, r.text(greeting), page.Name, r.timestamp(), r.port})
}

// text marks s as trusted HTML in legacy mode so it is emitted verbatim.
func (r *Renderer) text(s string) any {
	if r.legacy {
		return template.HTML(s)
	}
	return s
}

func (r *Renderer) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// render executes into a buffer first so a template failure can still
// become a 500.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func logoutURL(param, proof string) string {
	if param == "" || proof == "" {
		return "/logout"
	}
	return "/logout?" + url.Values{param: {proof}}.Encode()
}
