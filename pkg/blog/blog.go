// Package blog holds the blog record an og image is generated for.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when a required blog field is empty.
var ErrMissingField = errors.New("missing required field")

// Blog is the text rendered onto the image.
type Blog struct {
	Title    string
	Subtitle string
	Author   string
	Email    string // optional, used for the Gravatar avatar
}

// Validate checks that title, subtitle and author are present.
func (b Blog) Validate() error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return fmt.Errorf("%w: title", ErrMissingField)
	case strings.TrimSpace(b.Subtitle) == "":
		return fmt.Errorf("%w: subtitle", ErrMissingField)
	case strings.TrimSpace(b.Author) == "":
		return fmt.Errorf("%w: author", ErrMissingField)
	}
	return nil
}

// Merge returns b with empty fields filled from fallback.
func (b Blog) Merge(fallback Blog) Blog {
	if b.Title == "" {
		b.Title = fallback.Title
	}
	if b.Subtitle == "" {
		b.Subtitle = fallback.Subtitle
	}
	if b.Author == "" {
		b.Author = fallback.Author
	}
	if b.Email == "" {
		b.Email = fallback.Email
	}
	return b
}

// frontmatter mirrors the keys read from a post header.
type frontmatter struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
}

// ParseFrontmatter extracts a Blog from the YAML frontmatter of a markdown
// post. A missing subtitle falls back to the description.
func ParseFrontmatter(data []byte) (Blog, error) {
	parts := bytes.SplitN(data, []byte("---"), 3)
	if len(parts) < 3 || len(bytes.TrimSpace(parts[0])) != 0 {
		return Blog{}, fmt.Errorf("invalid frontmatter: missing --- delimiters")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[1], &fm); err != nil {
		return Blog{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	b := Blog{
		Title:    fm.Title,
		Subtitle: fm.Subtitle,
		Author:   fm.Author,
		Email:    fm.Email,
	}
	if b.Subtitle == "" {
		b.Subtitle = fm.Description
	}
	return b, nil
}

// LoadPost reads a markdown post and parses its frontmatter.
func LoadPost(path string) (Blog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blog{}, fmt.Errorf("read post: %w", err)
	}
	b, err := ParseFrontmatter(data)
	if err != nil {
		return Blog{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
