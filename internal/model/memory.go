// Package model defines the core memory data types.
package model

import "time"

// Well-known tags interpreted by higher layers. To the storage layer they
// are ordinary tags.
const (
	TagArchived = "archived"
	TagTask     = "task"

	StatusTodo = "todo"
	StatusWip  = "wip"
	StatusDone = "done"
)

// StatusTags are the mutually exclusive task status tags.
var StatusTags = []string{StatusTodo, StatusWip, StatusDone}

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool {
	for _, v := range StatusTags {
		if s == v {
			return true
		}
	}
	return false
}

// Memory represents a stored memory entry. Content and CreatedAt are
// immutable after insert; only the tag set and embedding presence evolve.
type Memory struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	HasVector bool      `json:"has_vector,omitempty"`
}

// HasTag reports whether tag is in the memory's tag set.
func (m Memory) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Archived reports whether the memory carries the archived tag.
func (m Memory) Archived() bool { return m.HasTag(TagArchived) }

// IsTask reports whether the memory carries the task tag.
func (m Memory) IsTask() bool { return m.HasTag(TagTask) }

// Status returns the memory's task status tag, or "" if none is present.
func (m Memory) Status() string {
	for _, t := range m.Tags {
		if ValidStatus(t) {
			return t
		}
	}
	return ""
}

// Scored pairs a memory with its similarity score against a query.
type Scored struct {
	Memory
	Score float64 `json:"score"`
}
