// Package content holds the page tree: form pages and the content pages that
// embed them.
package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/digitalocean/contact-form/pkg/forms"
	"github.com/digitalocean/contact-form/pkg/models"
)

// ErrPageNotFound is returned when no page lives at a path
var ErrPageNotFound = errors.New("page not found")

// Page is whatever lives at a URL path: exactly one of Form or Content is set
type Page struct {
	Form    *models.FormPage
	Content *models.ContentPage
}

// Registry is the in-memory page tree. Reads may run concurrently with the
// edit path.
type Registry struct {
	mu       sync.RWMutex
	forms    map[string]models.FormPage
	contents map[string]models.ContentPage
}

// NewRegistry creates an empty page tree
func NewRegistry() *Registry {
	return &Registry{
		forms:    make(map[string]models.FormPage),
		contents: make(map[string]models.ContentPage),
	}
}

// SaveFormPage creates or replaces the form page with p's slug. The stored
// field list always ends with the spam protection field.
func (r *Registry) SaveFormPage(p models.FormPage) (models.FormPage, error) {
	p.Slug = normalizeSlug(p.Slug)
	if p.Slug == "" {
		return models.FormPage{}, fmt.Errorf("form page %q: slug is required", p.Title)
	}

	fields := make(models.FormDefinition, 0, len(p.Fields))
	seen := make(map[string]bool, len(p.Fields))
	for _, f := range forms.EnsureHoneypotField(p.Fields) {
		if f.Kind == "" {
			f.Kind = models.KindSingleLine
		}
		if !f.Kind.Valid() {
			return models.FormPage{}, fmt.Errorf("form page %s: field %q has unknown type %q", p.Slug, f.Label, f.Kind)
		}
		if f.Kind.HasChoices() && len(f.Choices) == 0 {
			return models.FormPage{}, fmt.Errorf("form page %s: field %q needs choices", p.Slug, f.Label)
		}
		if f.Name == "" || seen[f.Name] {
			return models.FormPage{}, fmt.Errorf("form page %s: duplicate or empty field name %q", p.Slug, f.Name)
		}
		seen[f.Name] = true
		fields = append(fields, f)
	}
	p.Fields = fields

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.contents[p.Slug]; taken {
		return models.FormPage{}, fmt.Errorf("slug %s is already used by a content page", p.Slug)
	}
	if existing, ok := r.forms[p.Slug]; ok && p.ID == "" {
		p.ID = existing.ID
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.forms[p.Slug] = p
	return copyForm(p), nil
}

// SaveContentPage creates or replaces the content page with p's slug. A
// referenced contact form must already exist.
func (r *Registry) SaveContentPage(p models.ContentPage) (models.ContentPage, error) {
	p.Slug = normalizeSlug(p.Slug)
	p.ContactForm = normalizeSlug(p.ContactForm)
	if p.Slug == "" {
		return models.ContentPage{}, fmt.Errorf("content page %q: slug is required", p.Title)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.forms[p.Slug]; taken {
		return models.ContentPage{}, fmt.Errorf("slug %s is already used by a form page", p.Slug)
	}
	if p.ContactForm != "" {
		if _, ok := r.forms[p.ContactForm]; !ok {
			return models.ContentPage{}, fmt.Errorf("content page %s: contact form %s does not exist", p.Slug, p.ContactForm)
		}
	}
	if existing, ok := r.contents[p.Slug]; ok && p.ID == "" {
		p.ID = existing.ID
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.contents[p.Slug] = p
	return p, nil
}

// FormPage returns the form page with the given slug
func (r *Registry) FormPage(slug string) (models.FormPage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.forms[normalizeSlug(slug)]
	return copyForm(p), ok
}

// ContentPage returns the content page with the given slug
func (r *Registry) ContentPage(slug string) (models.ContentPage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.contents[normalizeSlug(slug)]
	return p, ok
}

// FormPages lists form pages ordered by slug
func (r *Registry) FormPages() []models.FormPage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FormPage, 0, len(r.forms))
	for _, p := range r.forms {
		out = append(out, copyForm(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// ContentPages lists content pages ordered by slug
func (r *Registry) ContentPages() []models.ContentPage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ContentPage, 0, len(r.contents))
	for _, p := range r.contents {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// PagesUsingForm lists the content pages that embed the given form
func (r *Registry) PagesUsingForm(formSlug string) []models.ContentPage {
	formSlug = normalizeSlug(formSlug)
	var out []models.ContentPage
	for _, p := range r.ContentPages() {
		if p.ContactForm == formSlug {
			out = append(out, p)
		}
	}
	return out
}

// Resolve finds the page served at a URL path such as "/contact/"
func (r *Registry) Resolve(path string) (Page, error) {
	slug := normalizeSlug(path)
	if p, ok := r.FormPage(slug); ok {
		return Page{Form: &p}, nil
	}
	if p, ok := r.ContentPage(slug); ok {
		return Page{Content: &p}, nil
	}
	return Page{}, ErrPageNotFound
}

// URL returns the path a slug is served at
func URL(slug string) string {
	return "/" + normalizeSlug(slug) + "/"
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), "/"))
}

func copyForm(p models.FormPage) models.FormPage {
	p.Fields = append(models.FormDefinition(nil), p.Fields...)
	return p
}
