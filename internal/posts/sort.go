package posts

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// UndatedPolicy decides how posts without a usable date compare.
type UndatedPolicy string

const (
	// UndatedEqual treats a comparison as a tie whenever either side has no
	// date. Combined with a stable sort, undated posts keep their position
	// relative to their neighbours, which is not a total order.
	UndatedEqual UndatedPolicy = "equal"
	// UndatedLast moves undated posts after every dated post, keeping their
	// encountered order.
	UndatedLast UndatedPolicy = "last"
)

// ParseUndatedPolicy maps a config value to a policy. Empty selects
// UndatedEqual.
func ParseUndatedPolicy(value string) (UndatedPolicy, error) {
	switch policy := UndatedPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "", UndatedEqual:
		return UndatedEqual, nil
	case UndatedLast:
		return UndatedLast, nil
	default:
		return "", fmt.Errorf("posts: unknown undated policy %q", value)
	}
}

type datedPost struct {
	post  Post
	date  time.Time
	dated bool
}

// SortByDate orders posts newest first in place using a stable sort.
func SortByDate(posts []Post, policy UndatedPolicy) {
	keyed := make([]datedPost, len(posts))
	for i, post := range posts {
		date, ok := ParseDate(post.Date)
		keyed[i] = datedPost{post: post, date: date, dated: ok}
	}

	compare := compareUndatedEqual
	if policy == UndatedLast {
		compare = compareUndatedLast
	}
	slices.SortStableFunc(keyed, compare)

	for i := range keyed {
		posts[i] = keyed[i].post
	}
}

func compareUndatedEqual(a, b datedPost) int {
	if !a.dated || !b.dated {
		return 0
	}
	return b.date.Compare(a.date)
}

func compareUndatedLast(a, b datedPost) int {
	switch {
	case a.dated && b.dated:
		return b.date.Compare(a.date)
	case a.dated:
		return -1
	case b.dated:
		return 1
	default:
		return 0
	}
}
