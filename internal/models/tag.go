// ABOUTME: Tag model for categorizing notes and todos.
// ABOUTME: Names compare by exact string; "Work" and "work" are different tags.

package models

import (
	"strings"
	"time"
)

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_date"`
}

// NewTag trims surrounding whitespace but keeps case.
func NewTag(name string) *Tag {
	return &Tag{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// UniqueTagNames trims names, drops empties and removes exact duplicates
// while keeping first-seen order.
func UniqueTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
