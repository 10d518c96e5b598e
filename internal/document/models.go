package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotRecordList is returned by ParseRecords when the document is valid JSON
// but not an array of objects. Such documents are still stored as-is.
var ErrNotRecordList = errors.New("document is not an array of objects")

// Field is one key of an employee record with its still-encoded JSON value.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Record is an employee record with no fixed schema: the fields in the order
// the client sent them. Typical keys are id, name, hiredYear, dateOfBirth,
// sex, spouseDateOfBirth and spouseSex.
type Record []Field

// Get returns the raw value stored under key.
func (r Record) Get(key string) (json.RawMessage, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the record's keys in document order.
func (r Record) Keys() []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Key)
	}
	return out
}

// ID decodes the id field as an integer.
func (r Record) ID() (int64, bool) {
	raw, ok := r.Get("id")
	if !ok {
		return 0, false
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

// MarshalJSON writes the fields back in their original order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(f.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order. Duplicate keys are
// kept as separate fields.
func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}
	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key token %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		out = append(out, Field{Key: key, Value: v})
	}
	*r = out
	return nil
}

// ParseRecords decodes a document into records. It fails with
// ErrNotRecordList when raw is well-formed JSON of another shape.
func ParseRecords(raw []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("parse records: invalid JSON")
		}
		return nil, ErrNotRecordList
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		it = bytes.TrimSpace(it)
		if len(it) == 0 || it[0] != '{' {
			return nil, ErrNotRecordList
		}
		var rec Record
		if err := json.Unmarshal(it, &rec); err != nil {
			return nil, fmt.Errorf("parse records: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
