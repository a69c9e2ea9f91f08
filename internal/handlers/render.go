package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"financecoach/internal/config"
)

// Renderer executes page templates with the data every page shares
type Renderer struct {
	templates  *template.Template
	middleware *Middleware
	features   config.Features
}

// NewRenderer creates a new renderer
func NewRenderer(templates *template.Template, middleware *Middleware, features config.Features) *Renderer {
	return &Renderer{
		templates:  templates,
		middleware: middleware,
		features:   features,
	}
}

// Page builds the shared header data for a request
func (rd *Renderer) Page(r *http.Request, title string) PageData {
	return PageData{
		Title:     title + " - Financial Coach",
		User:      GetUserFromContext(r.Context()),
		CSRFToken: rd.middleware.CSRFToken(r),
		Features:  rd.features,
		Path:      r.URL.Path,
	}
}

// Render executes the named template into a buffer so a template error never
// leaves a half-written page
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// templateDirs are parsed after base.tmpl, which defines the shared layout
var templateDirs = []string{"components", "auth", "pages", "literacy", "finance"}

// LoadTemplates parses every page template under templatesPath
func LoadTemplates(templatesPath string) (*template.Template, error) {
	files := []string{filepath.Join(templatesPath, "base.tmpl")}
	for _, dir := range templateDirs {
		pattern := filepath.Join(templatesPath, dir, "*.tmpl")
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// TemplateFuncs returns the helpers available to every template
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"list": func(items ...string) []string {
			return items
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"money":      money,
		"display":    display,
		"humanize":   humanize,
		"sortedKeys": sortedKeys,
		"contains": func(slice []string, val string) bool {
			for _, item := range slice {
				if item == val {
					return true
				}
			}
			return false
		},
	}
}

// money formats an amount in rand
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("%sR%s.%02d", sign, grouped.String(), cents)
}

// display renders a decoded JSON value for a results table
func display(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%.2f", val)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, display(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		parts := make([]string, 0, len(val))
		for _, k := range sortedKeys(val) {
			parts = append(parts, humanize(k)+": "+display(val[k]))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(val)
	}
}

// humanize turns a snake_case key into a label
func humanize(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
