// Package model implements the Standard Notes record model: tags, notes,
// the references linking them, and the package they are exported in.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType identifies the kind of a record.
type ContentType string

const (
	TypeTag  ContentType = "tag"
	TypeNote ContentType = "note"
)

// allowedTypes is the set a record's content type must belong to.
var allowedTypes = []ContentType{TypeTag, TypeNote}

// ReferenceContentType is the label every Reference carries, whatever the
// real type of the referenced record is. Importers of the exported package
// read it as-is, so it is kept fixed.
const ReferenceContentType = "Tag"

// TimeLayout is the timestamp format used for created_at/updated_at.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// ErrInvalidContentType is returned when a record is built with a content
// type outside of the allowed set.
var ErrInvalidContentType = errors.New("invalid content type")

// Reference points at another record.
type Reference struct {
	UUID        string `json:"uuid"`
	ContentType string `json:"content_type"`
}

// Record is a Tag or a Note.
type Record interface {
	GUID() string
	ContentType() ContentType
	Reference() Reference
	Serialize() Item
	base() *Standard
}

// Standard holds the fields shared by every record.
type Standard struct {
	Title      string
	CreatedAt  string
	UpdatedAt  string
	References []Reference

	contentType ContentType
	guid        string
}

type options struct {
	guid string
	now  func() time.Time
}

// Option customizes record construction.
type Option func(*options)

// WithGUID sets the record identifier instead of generating one.
func WithGUID(guid string) Option {
	return func(o *options) { o.guid = guid }
}

// WithClock overrides the time source used for the timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewStandard builds a record base. contentType is matched case-insensitively
// and stored in lower case. title is not checked: an empty title is accepted,
// as exported pages can hold untitled notes.
func NewStandard(title, contentType string, opts ...Option) (*Standard, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	ct := ContentType(strings.ToLower(contentType))
	if err := validateType(ct); err != nil {
		return nil, err
	}

	guid := o.guid
	if guid == "" {
		guid = uuid.NewString()
	}

	stamp := o.now().UTC().Format(TimeLayout)
	return &Standard{
		Title:       title,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		References:  []Reference{},
		contentType: ct,
		guid:        guid,
	}, nil
}

func validateType(ct ContentType) error {
	for _, allowed := range allowedTypes {
		if ct == allowed {
			return nil
		}
	}
	names := make([]string, len(allowedTypes))
	for i, allowed := range allowedTypes {
		names[i] = string(allowed)
	}
	return fmt.Errorf("%w: type '%s' not one of %s", ErrInvalidContentType, ct, strings.Join(names, ", "))
}

// GUID returns the immutable record identifier.
func (s *Standard) GUID() string { return s.guid }

// ContentType returns the lower-cased record type.
func (s *Standard) ContentType() ContentType { return s.contentType }

// Reference returns the value other records store to point at this one.
func (s *Standard) Reference() Reference {
	return Reference{UUID: s.guid, ContentType: ReferenceContentType}
}

// Serialize projects the record into its exported shape. The returned item
// does not share memory with the record.
func (s *Standard) Serialize() Item {
	refs := make([]Reference, len(s.References))
	copy(refs, s.References)
	return Item{
		UUID:        s.guid,
		ContentType: s.contentType,
		Content: Content{
			Title:      s.Title,
			References: refs,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// JSON dumps the record alone, indented like a package file.
func (s *Standard) JSON() ([]byte, error) {
	return recordJSON(s.Serialize())
}

func (s *Standard) String() string {
	return fmt.Sprintf("<%s: %s>", s.contentType, s.guid)
}

func (s *Standard) base() *Standard { return s }

// Tag is used to group notes.
type Tag struct {
	Standard
}

// NewTag creates a tag titled title.
func NewTag(title string, opts ...Option) (*Tag, error) {
	s, err := NewStandard(title, string(TypeTag), opts...)
	if err != nil {
		return nil, err
	}
	return &Tag{Standard: *s}, nil
}

// Note is a titled Markdown document.
type Note struct {
	Standard
	Text string
}

// NewNote creates a note with the given title and Markdown body.
func NewNote(title, text string, opts ...Option) (*Note, error) {
	s, err := NewStandard(title, string(TypeNote), opts...)
	if err != nil {
		return nil, err
	}
	return &Note{Standard: *s, Text: text}, nil
}

// Serialize adds the note body to the standard projection.
func (n *Note) Serialize() Item {
	item := n.Standard.Serialize()
	text := n.Text
	item.Content.Text = &text
	return item
}

// JSON dumps the note alone, including its text.
func (n *Note) JSON() ([]byte, error) {
	return recordJSON(n.Serialize())
}

func recordJSON(item Item) ([]byte, error) {
	data, err := encode(item, WithIndent(FileIndent))
	if err != nil {
		return nil, fmt.Errorf("marshaling record %s: %w", item.UUID, err)
	}
	return data, nil
}

// Link makes a and b reference each other. Linking the same pair twice
// records the references twice.
func Link(a, b Record) {
	ab, bb := a.base(), b.base()
	refA, refB := a.Reference(), b.Reference()
	ab.References = append(ab.References, refB)
	bb.References = append(bb.References, refA)
}
