// Package tags implements hierarchical gameplay tags, tag containers and tag
// queries. A tag such as Resource.Metal.Iron is a child of Resource.Metal
// and of Resource.
package tags

import (
	"encoding/json"
	"strings"
)

// Tag is a dot-separated hierarchical name
type Tag string

// IsValid reports whether the tag is non-empty
func (t Tag) IsValid() bool {
	return t != ""
}

// String returns the tag name
func (t Tag) String() string {
	return string(t)
}

// MatchesTag reports whether t equals parent or is a descendant of it
func (t Tag) MatchesTag(parent Tag) bool {
	if !t.IsValid() || !parent.IsValid() {
		return false
	}
	if t == parent {
		return true
	}
	return strings.HasPrefix(string(t), string(parent)+".")
}

// Parent returns the direct parent tag, or the empty tag at the root
func (t Tag) Parent() Tag {
	i := strings.LastIndexByte(string(t), '.')
	if i < 0 {
		return ""
	}
	return t[:i]
}

// Container is an ordered set of unique tags. The zero value is empty and
// ready to use.
type Container struct {
	tags []Tag
}

// New builds a container from the given tags, dropping blanks and duplicates
func New(values ...Tag) Container {
	var c Container
	for _, v := range values {
		c.Add(v)
	}
	return c
}

// FromStrings builds a container from raw tag names
func FromStrings(values ...string) Container {
	var c Container
	for _, v := range values {
		c.Add(Tag(strings.TrimSpace(v)))
	}
	return c
}

// Add inserts a tag if it is valid and not already present
func (c *Container) Add(t Tag) {
	if !t.IsValid() || c.HasTagExact(t) {
		return
	}
	c.tags = append(c.tags, t)
}

// Append adds every tag of other in order
func (c *Container) Append(other Container) {
	for _, t := range other.tags {
		c.Add(t)
	}
}

// Union returns a new container holding the tags of all inputs in order
func Union(containers ...Container) Container {
	var out Container
	for _, c := range containers {
		out.Append(c)
	}
	return out
}

// Len returns the number of tags
func (c Container) Len() int {
	return len(c.tags)
}

// IsEmpty reports whether the container holds no tags
func (c Container) IsEmpty() bool {
	return len(c.tags) == 0
}

// First returns the first inserted tag, or the empty tag
func (c Container) First() Tag {
	if len(c.tags) == 0 {
		return ""
	}
	return c.tags[0]
}

// Tags returns a copy of the contained tags
func (c Container) Tags() []Tag {
	out := make([]Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Strings returns the tag names
func (c Container) Strings() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = string(t)
	}
	return out
}

// HasTag reports whether any contained tag equals t or is a child of t
func (c Container) HasTag(t Tag) bool {
	for _, own := range c.tags {
		if own.MatchesTag(t) {
			return true
		}
	}
	return false
}

// HasTagExact reports whether t itself is contained
func (c Container) HasTagExact(t Tag) bool {
	for _, own := range c.tags {
		if own == t {
			return true
		}
	}
	return false
}

// HasAll reports whether every tag of other is matched. An empty other is
// always satisfied.
func (c Container) HasAll(other Container) bool {
	for _, t := range other.tags {
		if !c.HasTag(t) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one tag of other is matched. An empty
// other never matches.
func (c Container) HasAny(other Container) bool {
	for _, t := range other.tags {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// HasAllExact is HasAll without hierarchy expansion
func (c Container) HasAllExact(other Container) bool {
	for _, t := range other.tags {
		if !c.HasTagExact(t) {
			return false
		}
	}
	return true
}

// HasAnyExact is HasAny without hierarchy expansion
func (c Container) HasAnyExact(other Container) bool {
	for _, t := range other.tags {
		if c.HasTagExact(t) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the container as a list of tag names
func (c Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Strings())
}

// UnmarshalJSON decodes a list of tag names
func (c *Container) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = FromStrings(raw...)
	return nil
}
