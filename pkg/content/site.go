package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/digitalocean/contact-form/pkg/models"
)

// Site is the on-disk description of the page tree
type Site struct {
	FormPages    []models.FormPage    `yaml:"form_pages"`
	ContentPages []models.ContentPage `yaml:"content_pages"`
}

// LoadSite reads a YAML site file into a new registry
func LoadSite(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site file: %w", err)
	}
	return ParseSite(data)
}

// ParseSite builds a registry from YAML. Form pages are saved first so content
// pages can reference them.
func ParseSite(data []byte) (*Registry, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site file: %w", err)
	}

	reg := NewRegistry()
	for _, p := range site.FormPages {
		if _, err := reg.SaveFormPage(p); err != nil {
			return nil, err
		}
	}
	for _, p := range site.ContentPages {
		if _, err := reg.SaveContentPage(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
