package comment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Store errors.
var (
	// ErrEmptySpan is returned when a comment is created over a span with
	// no content.
	ErrEmptySpan = errors.New("comment span is empty")

	// ErrInvalidSpan is returned for negative or inverted offsets.
	ErrInvalidSpan = errors.New("comment span is invalid")

	// ErrOverlappingAnchor is returned when a new comment's anchor would
	// intersect an existing one. Overlap is a caller error: the marker
	// codec's splice order is only well-defined for disjoint anchors.
	ErrOverlappingAnchor = errors.New("comment anchor overlaps an existing comment")

	// ErrInvalidType is returned for an unknown comment type.
	ErrInvalidType = errors.New("invalid comment type")

	// ErrNotFound is returned when no comment has the requested id.
	ErrNotFound = errors.New("comment not found")
)

// CollapsePolicy controls what happens to a comment whose anchor collapses
// to a zero or negative span after an edit.
type CollapsePolicy string

const (
	// PolicyDrop removes collapsed comments. This is the default.
	PolicyDrop CollapsePolicy = "drop"

	// PolicyClamp pins HighlightEnd to HighlightStart and keeps the
	// comment; consumers hide it while the span is empty.
	PolicyClamp CollapsePolicy = "clamp"

	// PolicyKeep retains the mapped values untouched.
	PolicyKeep CollapsePolicy = "keep"
)

// Valid reports whether p is a known policy.
func (p CollapsePolicy) Valid() bool {
	switch p {
	case PolicyDrop, PolicyClamp, PolicyKeep:
		return true
	}
	return false
}

// Assoc values for MapFunc: the side an anchor leans toward when an edit
// lands exactly on it.
const (
	// AssocBefore keeps the position before text inserted at that exact
	// offset. Used for highlight starts so boundary insertions are not
	// absorbed into the comment.
	AssocBefore = -1

	// AssocAfter moves the position after text inserted at that exact
	// offset. Used for highlight ends so boundary edits extend the comment.
	AssocAfter = 1
)

// MapFunc translates a pre-edit offset into a post-edit offset. The editor
// supplies one per text change; it is only valid for that change.
type MapFunc func(pos int, assoc int) int

// idLength is the number of UUID characters used for comment ids.
const idLength = 8

// Options configures a Store. The zero value uses PolicyDrop.
type Options struct {
	CollapsePolicy CollapsePolicy
}

// Store owns the authoritative comment list for one document.
//
// It is intentionally not safe for concurrent use: the engine runs on the
// editor's single change-notification turn, and every operation is a pure
// in-memory computation. The one discipline callers must follow is the
// re-entrancy guard: wrap store-initiated programmatic document edits in
// WithSuppressed so the resulting change notification does not remap anchors
// a second time.
type Store struct {
	comments   []Comment
	policy     CollapsePolicy
	suppressed int
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	policy := opts.CollapsePolicy
	if !policy.Valid() {
		policy = PolicyDrop
	}
	return &Store{policy: policy}
}

// newID returns a fresh short comment id, the first 8 characters of a UUID.
func newID() string {
	return uuid.NewString()[:idLength]
}

// Create adds a comment anchored to [start, end) of the clean content and
// returns it. The span must be non-empty and must not overlap any existing
// comment's anchor.
func (s *Store) Create(start, end int, typ Type, text string) (Comment, error) {
	if start < 0 || end < start {
		return Comment{}, fmt.Errorf("create comment [%d:%d): %w", start, end, ErrInvalidSpan)
	}
	if end == start {
		return Comment{}, fmt.Errorf("create comment [%d:%d): %w", start, end, ErrEmptySpan)
	}
	if !typ.Valid() {
		return Comment{}, fmt.Errorf("create comment: %q: %w", typ, ErrInvalidType)
	}

	c := Comment{
		ID:             newID(),
		Text:           text,
		Type:           typ,
		MarkerPos:      start,
		HighlightStart: start,
		HighlightEnd:   end,
	}
	for _, existing := range s.comments {
		if existing.Overlaps(c) {
			return Comment{}, fmt.Errorf("create comment [%d:%d): overlaps %s: %w",
				start, end, existing.ID, ErrOverlappingAnchor)
		}
	}

	s.comments = append(s.comments, c)
	return c, nil
}

// Get returns the comment with the given id.
func (s *Store) Get(id string) (Comment, bool) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// Remove deletes the comment with the given id.
func (s *Store) Remove(id string) error {
	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove comment %q: %w", id, ErrNotFound)
}

// Len returns the number of live comments.
func (s *Store) Len() int {
	return len(s.comments)
}

// Comments returns a snapshot of the comment list in document order of the
// clean content (highlight start, then end). Marker positions are not used
// for ordering: parsed comments carry raw offsets while created ones carry
// clean offsets, and only the highlight anchors are comparable across both.
// Mutating the returned slice does not affect the store.
func (s *Store) Comments() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HighlightStart != out[j].HighlightStart {
			return out[i].HighlightStart < out[j].HighlightStart
		}
		return out[i].HighlightEnd < out[j].HighlightEnd
	})
	return out
}

// Reset replaces the store's contents, e.g. after parsing a document's
// markers on load.
func (s *Store) Reset(comments []Comment) {
	s.comments = make([]Comment, len(comments))
	copy(s.comments, comments)
}

// WithSuppressed runs fn with edit-notification remapping suppressed. Use it
// around programmatic document edits made on the store's behalf (stripping a
// removed comment's markers, re-serializing) so the editor's resulting change
// callback does not double-shift anchors.
func (s *Store) WithSuppressed(fn func()) {
	s.suppressed++
	defer func() { s.suppressed-- }()
	fn()
}

// Suppressed reports whether remapping is currently suppressed.
func (s *Store) Suppressed() bool {
	return s.suppressed > 0
}

// MapThroughChanges remaps every comment anchor through one text change.
// Highlight starts lean left (AssocBefore) and highlight ends lean right
// (AssocAfter). The remap is atomic: the new list is built in full before it
// replaces the old one, so a panicking mapPos leaves the store untouched.
// Collapsed anchors are handled per the store's collapse policy.
//
// Returns the ids of comments dropped by PolicyDrop.
func (s *Store) MapThroughChanges(mapPos MapFunc) []string {
	if s.suppressed > 0 || mapPos == nil {
		return nil
	}

	next := make([]Comment, 0, len(s.comments))
	var dropped []string
	for _, c := range s.comments {
		mapped := c
		mapped.HighlightStart = mapPos(c.HighlightStart, AssocBefore)
		mapped.HighlightEnd = mapPos(c.HighlightEnd, AssocAfter)

		if mapped.Collapsed() {
			switch s.policy {
			case PolicyDrop:
				dropped = append(dropped, c.ID)
				continue
			case PolicyClamp:
				mapped.HighlightEnd = mapped.HighlightStart
			case PolicyKeep:
			}
		}
		next = append(next, mapped)
	}

	s.comments = next
	return dropped
}
