// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package resources turns the raw resource document of a harvest into the views
served by the catalog.

A resource document maps a category name to the resources found for it:

	{
	    "Lexical resources":     {"count": 1, "resources": [...]},
	    "Language descriptions": {"count": 6, "resources": [...]}
	}

The category order chosen by the scraper is meaningful (it mirrors the archive
pages), so [Document] keeps keys in source order and [Summarize] reports them
in that order.
*/
package resources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Entry is one category of a [Document].
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Document is a JSON object that remembers the order of its keys.
// The zero value is an empty document.
type Document struct {
	entries []Entry
}

// ErrNotObject is returned when a resource document is not a JSON object.
var ErrNotObject = errors.New("resources: document is not a JSON object")

// Parse reads a JSON object keeping key order. Empty input and JSON null
// yield an empty document.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &Document{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	document := &Document{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("resources: %w", err)
		}
		key, _ := keyToken.(string)

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("resources: value of %q: %w", key, err)
		}
		document.Set(key, value)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("resources: trailing data after document")
	}

	return document, nil
}

// Set adds or replaces a key. A replaced key keeps its original position,
// matching how JavaScript objects treat duplicate keys.
func (document *Document) Set(key string, value json.RawMessage) {
	for i := range document.entries {
		if document.entries[i].Key == key {
			document.entries[i].Value = value
			return
		}
	}
	document.entries = append(document.entries, Entry{Key: key, Value: value})
}

// Get returns the raw value of a key.
func (document *Document) Get(key string) (json.RawMessage, bool) {
	for _, entry := range document.Entries() {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Delete removes a key, keeping the order of the others.
func (document *Document) Delete(key string) {
	for i, entry := range document.entries {
		if entry.Key == key {
			document.entries = append(document.entries[:i], document.entries[i+1:]...)
			return
		}
	}
}

// Entries returns the categories in source order.
func (document *Document) Entries() []Entry {
	if document == nil {
		return nil
	}
	return document.entries
}

// Len returns the number of categories.
func (document *Document) Len() int {
	return len(document.Entries())
}

// MarshalJSON writes the object with keys in source order.
func (document *Document) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, entry := range document.Entries() {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		if len(entry.Value) == 0 {
			buffer.WriteString("null")
		} else {
			buffer.Write(entry.Value)
		}
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON implements [json.Unmarshaler] with [Parse].
func (document *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*document = *parsed
	return nil
}
