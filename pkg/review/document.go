// Package review ties the pieces together for one document under review:
// loading raw content, decoding its markers into a comment store, mutating
// comments, and writing the document back safely.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdreview/internal/logging"
	"github.com/yaklabco/mdreview/pkg/comment"
	"github.com/yaklabco/mdreview/pkg/config"
	"github.com/yaklabco/mdreview/pkg/fsutil"
	"github.com/yaklabco/mdreview/pkg/marker"
)

// ErrExternallyModified is returned by Save when the document changed on
// disk after it was loaded. Saving would clobber the external edit.
var ErrExternallyModified = errors.New("document modified externally since load")

// Document is one Markdown file under review. It owns the raw content (with
// markers), the clean content, and the comment store. Not safe for
// concurrent use, like the store it wraps.
type Document struct {
	path  string
	info  *fsutil.FileInfo
	raw   string
	clean string
	store *comment.Store
	cfg   *config.Config
}

// Load reads the document at path and decodes its markers.
func Load(ctx context.Context, path string, cfg *config.Config) (*Document, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	raw := string(content)
	clean, comments := marker.ParseAndStrip(raw)

	store := comment.NewStore(comment.Options{CollapsePolicy: cfg.CollapsePolicy})
	store.Reset(comments)

	logging.FromContext(ctx).Debug("document loaded",
		logging.FieldPath, path,
		logging.FieldComments, store.Len())

	return &Document{
		path:  path,
		info:  info,
		raw:   raw,
		clean: clean,
		store: store,
		cfg:   cfg,
	}, nil
}

// New creates an in-memory document from raw content, without a backing
// file. Save returns an error until a path is involved; used by tests and
// pipe-style consumers.
func New(raw string, cfg *config.Config) *Document {
	if cfg == nil {
		cfg = config.Default()
	}
	clean, comments := marker.ParseAndStrip(raw)
	store := comment.NewStore(comment.Options{CollapsePolicy: cfg.CollapsePolicy})
	store.Reset(comments)
	return &Document{raw: raw, clean: clean, store: store, cfg: cfg}
}

// Path returns the backing file path, empty for in-memory documents.
func (d *Document) Path() string { return d.path }

// Raw returns the current content with markers.
func (d *Document) Raw() string { return d.raw }

// Clean returns the current content with markers stripped.
func (d *Document) Clean() string { return d.clean }

// Comments returns a snapshot of the document's comments in document order.
func (d *Document) Comments() []comment.Comment { return d.store.Comments() }

// Get returns the comment with the given id.
func (d *Document) Get(id string) (comment.Comment, bool) { return d.store.Get(id) }

// Add creates a comment over [start, end) of the clean content and splices
// its markers into the raw content.
func (d *Document) Add(start, end int, typ comment.Type, text string) (comment.Comment, error) {
	c, err := d.store.Create(start, end, typ, text)
	if err != nil {
		return comment.Comment{}, err
	}
	d.reserialize()

	logging.Default().Debug("comment added",
		logging.FieldCommentID, c.ID,
		logging.FieldCommentType, string(c.Type),
		logging.FieldStart, c.HighlightStart,
		logging.FieldEnd, c.HighlightEnd)
	return c, nil
}

// Remove deletes a comment and strips its markers from the raw content.
func (d *Document) Remove(id string) error {
	if err := d.store.Remove(id); err != nil {
		return err
	}
	d.reserialize()
	return nil
}

// StripAll removes every comment, leaving clean content.
func (d *Document) StripAll() int {
	n := d.store.Len()
	d.store.Reset(nil)
	d.raw = d.clean
	return n
}

// UpdateContent replaces the clean content after an external edit and remaps
// every comment anchor through mapPos. Dropped comment ids (collapsed
// anchors under the drop policy) are returned. The raw content is rebuilt
// from the surviving comments.
func (d *Document) UpdateContent(newClean string, mapPos comment.MapFunc) []string {
	dropped := d.store.MapThroughChanges(mapPos)
	d.clean = newClean
	d.reserialize()

	if len(dropped) > 0 {
		logging.Default().Info("comments dropped by edit",
			logging.FieldDropped, dropped)
	}
	return dropped
}

// Save writes the raw content back to the document's path. It refuses to
// overwrite an external edit made since load, and creates a sidecar backup
// first when configured.
func (d *Document) Save(ctx context.Context) error {
	if d.path == "" {
		return errors.New("save: document has no backing file")
	}

	if d.info != nil {
		modified, err := fsutil.CheckModified(ctx, d.info)
		if err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		if modified {
			return fmt.Errorf("save %s: %w", d.path, ErrExternallyModified)
		}
	}

	if d.cfg.Backups.Enabled {
		if _, err := fsutil.CreateBackup(ctx, d.path); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
	}

	var mode = fsutil.DefaultFileMode
	if d.info != nil {
		mode = d.info.Mode
	}
	if err := fsutil.WriteAtomic(ctx, d.path, []byte(d.raw), mode); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	// Re-stat so consecutive saves pass the modification check.
	_, info, err := fsutil.ReadFile(ctx, d.path)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	d.info = info
	return nil
}

// reserialize rebuilds raw content from clean content and the live
// comments. Wrapped in the store's re-entrancy guard: this is a
// store-initiated edit, not one to remap through.
func (d *Document) reserialize() {
	d.store.WithSuppressed(func() {
		d.raw = marker.Serialize(d.clean, d.store.Comments())
	})
}
