package blog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		blog    Blog
		wantErr bool
	}{
		{"complete", Blog{Title: "T", Subtitle: "S", Author: "A"}, false},
		{"email is optional", Blog{Title: "T", Subtitle: "S", Author: "A", Email: "a@b.c"}, false},
		{"no title", Blog{Subtitle: "S", Author: "A"}, true},
		{"blank subtitle", Blog{Title: "T", Subtitle: "  ", Author: "A"}, true},
		{"no author", Blog{Title: "T", Subtitle: "S"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.blog.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingField)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeKeepsExplicitValues(t *testing.T) {
	flags := Blog{Title: "From flags"}
	post := Blog{Title: "From post", Subtitle: "Sub", Author: "Mark", Email: "mark@binx.io"}

	got := flags.Merge(post)
	assert.Equal(t, Blog{Title: "From flags", Subtitle: "Sub", Author: "Mark", Email: "mark@binx.io"}, got)
}

func TestParseFrontmatter(t *testing.T) {
	data := []byte(`---
title: "Deploying with Terraform"
description: "A short description"
author: Mark van Holsteijn
email: mark@binx.io
tags: [terraform]
---

Body text.
`)

	b, err := ParseFrontmatter(data)
	require.NoError(t, err)
	assert.Equal(t, "Deploying with Terraform", b.Title)
	assert.Equal(t, "A short description", b.Subtitle)
	assert.Equal(t, "Mark van Holsteijn", b.Author)
	assert.Equal(t, "mark@binx.io", b.Email)
}

func TestParseFrontmatterPrefersSubtitle(t *testing.T) {
	b, err := ParseFrontmatter([]byte("---\nsubtitle: sub\ndescription: desc\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "sub", b.Subtitle)
}

func TestParseFrontmatterInvalid(t *testing.T) {
	_, err := ParseFrontmatter([]byte("no frontmatter here"))
	assert.Error(t, err)

	_, err = ParseFrontmatter([]byte("---\ntitle: [unclosed\n---\n"))
	assert.Error(t, err)
}

func TestLoadPost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Hello\n---\nbody"), 0o644))

	b, err := LoadPost(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello", b.Title)

	_, err = LoadPost(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
