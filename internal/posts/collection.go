package posts

import (
	"slices"
	"strings"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/google/uuid"
)

// Collection is an immutable, date-ordered set of posts.
type Collection struct {
	posts []Post
	index map[string]int
}

// CategoryGroup is the set of posts sharing a category.
type CategoryGroup struct {
	Category string    `json:"category"`
	Key      uuid.UUID `json:"key"`
	Posts    []Post    `json:"posts"`
}

// NewCollection sorts a copy of posts with policy. When several posts share
// an id, Lookup returns the first one in sorted order.
func NewCollection(posts []Post, policy UndatedPolicy) *Collection {
	sorted := slices.Clone(posts)
	SortByDate(sorted, policy)

	index := make(map[string]int, len(sorted))
	for i, post := range sorted {
		if post.ID == "" {
			continue
		}
		if _, exists := index[post.ID]; !exists {
			index[post.ID] = i
		}
	}
	return &Collection{posts: sorted, index: index}
}

// Posts returns the posts in collection order.
func (c *Collection) Posts() []Post {
	if c == nil {
		return nil
	}
	return slices.Clone(c.posts)
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.posts)
}

// Lookup finds a post by id.
func (c *Collection) Lookup(id string) (Post, bool) {
	if c == nil {
		return Post{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Post{}, false
	}
	return c.posts[i], true
}

// Recent returns at most n posts from the head of the collection.
func (c *Collection) Recent(n int) []Post {
	if c == nil || n <= 0 {
		return []Post{}
	}
	return slices.Clone(c.posts[:min(n, len(c.posts))])
}

// GroupByCategory buckets posts by category. Groups appear in the order
// their category is first seen, and posts keep collection order.
func (c *Collection) GroupByCategory() []CategoryGroup {
	if c == nil {
		return nil
	}
	return GroupPosts(c.posts)
}

// GroupPosts buckets list by exact category in first-seen order without
// reordering it, so filtered selections keep their collection order.
func GroupPosts(list []Post) []CategoryGroup {
	var groups []CategoryGroup
	positions := map[string]int{}
	for _, post := range list {
		pos, ok := positions[post.Category]
		if !ok {
			pos = len(groups)
			positions[post.Category] = pos
			groups = append(groups, CategoryGroup{
				Category: post.Category,
				Key:      identity.CategoryUUID(post.Category),
			})
		}
		groups[pos].Posts = append(groups[pos].Posts, post)
	}
	return groups
}

// Search returns posts whose title contains query, ignoring case. An empty
// query matches every post.
func (c *Collection) Search(query string) []Post {
	if c == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := []Post{}
	for _, post := range c.posts {
		if strings.Contains(strings.ToLower(post.Title), needle) {
			matches = append(matches, post)
		}
	}
	return matches
}
