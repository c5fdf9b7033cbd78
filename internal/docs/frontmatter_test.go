package docs

import (
	"strings"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	source := []byte(`---
title: Getting Started
subtitle: A gentle tour
description: First steps with the API
slug: start/here
weight: 1.5
owner: docs-team
---

# Heading

Body text.
`)

	fm, body := ParseFrontmatter(source)

	if fm.Title != "Getting Started" {
		t.Errorf("Title = %q", fm.Title)
	}
	if fm.Subtitle != "A gentle tour" {
		t.Errorf("Subtitle = %q", fm.Subtitle)
	}
	if fm.Description != "First steps with the API" {
		t.Errorf("Description = %q", fm.Description)
	}
	if fm.Slug != "start/here" {
		t.Errorf("Slug = %q", fm.Slug)
	}
	if fm.Weight == nil || *fm.Weight != 1.5 {
		t.Errorf("Weight = %v, want 1.5", fm.Weight)
	}
	if fm.Extra["owner"] != "docs-team" {
		t.Errorf("Extra = %v, want owner passthrough", fm.Extra)
	}
	if !strings.Contains(body, "# Heading") || strings.Contains(body, "title:") {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatter_NoHeader(t *testing.T) {
	source := []byte("# Just Markdown\n\nNo metadata here.\n")

	fm, body := ParseFrontmatter(source)
	if fm.Title != "" || fm.Weight != nil {
		t.Errorf("expected zero frontmatter, got %+v", fm)
	}
	if body != string(source) {
		t.Errorf("body should be the unchanged source, got %q", body)
	}
}

func TestParseFrontmatter_MalformedHeaderIsFailSoft(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\n\nbody survives\n")

	fm, body := ParseFrontmatter(source)
	if fm.Title != "" {
		t.Errorf("malformed header should yield empty metadata, got %+v", fm)
	}
	if body != string(source) {
		t.Errorf("malformed header should yield the full original text, got %q", body)
	}
}

func TestParseFrontmatter_WeightAbsent(t *testing.T) {
	source := []byte("---\ntitle: T\n---\nbody\n")

	fm, _ := ParseFrontmatter(source)
	if fm.Weight != nil {
		t.Errorf("Weight = %v, want nil when unset", *fm.Weight)
	}
}
