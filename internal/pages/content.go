// internal/pages/content.go
package pages

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the explanatory text of every page.
type Content struct {
	Title string              `yaml:"title"`
	Pages map[string]PageText `yaml:"pages"`
}

// PageText is the prose and header of one page.
type PageText struct {
	Heading    string   `yaml:"heading"`
	Title      string   `yaml:"title"`
	Logo       string   `yaml:"logo"`
	Href       string   `yaml:"href"`
	Paragraphs []string `yaml:"paragraphs"`
	Prompt     string   `yaml:"prompt"`
	Notes      []string `yaml:"notes"`
}

// LoadContent parses page text from YAML. Every page name in required must be present.
func LoadContent(data []byte, required ...string) (Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("parse page content: %w", err)
	}
	for _, name := range required {
		if _, ok := c.Pages[name]; !ok {
			return Content{}, fmt.Errorf("page content: missing entry for %q", name)
		}
	}
	return c, nil
}
