package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrPersist is returned when a package cannot be written to disk.
var ErrPersist = errors.New("writing package")

// FileIndent is the indentation used for files and single-record dumps.
const FileIndent = 4

// Item is the serialized snapshot of a record.
type Item struct {
	UUID        string      `json:"uuid"`
	ContentType ContentType `json:"content_type"`
	Content     Content     `json:"content"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// Content is the nested payload of an Item. Text is only set for notes.
type Content struct {
	Title      string      `json:"title"`
	References []Reference `json:"references"`
	Text       *string     `json:"text,omitempty"`
}

// clone returns a copy of it sharing no memory with the original.
func (it Item) clone() Item {
	refs := make([]Reference, len(it.Content.References))
	copy(refs, it.Content.References)
	it.Content.References = refs
	if it.Content.Text != nil {
		text := *it.Content.Text
		it.Content.Text = &text
	}
	return it
}

// Package is an ordered collection of record snapshots.
type Package struct {
	items []Item
}

// NewPackage creates an empty Package.
func NewPackage() *Package {
	return &Package{items: []Item{}}
}

// Add appends a snapshot of rec. Later changes to rec are not reflected.
func (p *Package) Add(rec Record) {
	p.items = append(p.items, rec.Serialize())
}

// Len returns the number of items added so far.
func (p *Package) Len() int {
	return len(p.items)
}

// Items returns deep copies of the snapshots in insertion order.
func (p *Package) Items() []Item {
	out := make([]Item, len(p.items))
	for i, item := range p.items {
		out[i] = item.clone()
	}
	return out
}

type jsonOptions struct {
	indent int
}

// JSONOption customizes Package.JSON.
type JSONOption func(*jsonOptions)

// WithIndent pretty-prints with n spaces per level.
func WithIndent(n int) JSONOption {
	return func(o *jsonOptions) { o.indent = n }
}

type document struct {
	Items []Item `json:"items"`
}

// JSON serializes the package as {"items": [...]}. Output is compact unless
// WithIndent is given.
func (p *Package) JSON(opts ...JSONOption) ([]byte, error) {
	data, err := encode(document{Items: p.items}, opts...)
	if err != nil {
		return nil, fmt.Errorf("marshaling package: %w", err)
	}
	return data, nil
}

// encode marshals v without escaping HTML characters.
func encode(v any, opts ...JSONOption) ([]byte, error) {
	var o jsonOptions
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if o.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", o.indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates with a newline; callers get the bare document.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write stores the package at path, indented for reading.
func (p *Package) Write(path string) (err error) {
	data, err := p.JSON(WithIndent(FileIndent))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrPersist, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w %s: %w", ErrPersist, path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w %s: %w", ErrPersist, path, err)
	}
	return nil
}
