package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ListForm tells which representation a StringList currently holds.
type ListForm int

const (
	// Structured lists hold their items directly.
	Structured ListForm = iota
	// Serialized lists hold JSON text that still has to be decoded.
	Serialized
)

// StringList is the facilities/achievements column. Rows come back from the
// store as JSON text while API payloads may already carry an array, so the
// value keeps whichever form it was given and Normalize turns either into a
// slice of strings.
type StringList struct {
	Form  ListForm
	Items []string
	Text  string
}

func NewStringList(items ...string) StringList {
	return StringList{Form: Structured, Items: items}
}

func SerializedStringList(text string) StringList {
	return StringList{Form: Serialized, Text: text}
}

// Normalize returns the list as a slice. An absent value yields an empty,
// non-nil slice.
func (l StringList) Normalize() ([]string, error) {
	if l.Form == Structured {
		if l.Items == nil {
			return []string{}, nil
		}
		return l.Items, nil
	}
	return decodeSerialized(l.Text, 1)
}

// Strings is Normalize for rendering: undecodable text renders as empty.
func (l StringList) Strings() []string {
	items, err := l.Normalize()
	if err != nil {
		return []string{}
	}
	return items
}

func (l StringList) Len() int {
	return len(l.Strings())
}

func decodeSerialized(text string, depth int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return []string{}, nil
	}
	if strings.HasPrefix(text, `"`) && depth > 0 {
		// some drivers hand back a JSON column as a quoted string
		var inner string
		if err := json.Unmarshal([]byte(text), &inner); err != nil {
			return nil, errors.Wrap(err, "string list")
		}
		return decodeSerialized(inner, depth-1)
	}
	items := []string{}
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, errors.Wrap(err, "string list")
	}
	return items, nil
}

// MarshalJSON always writes an array. Text that does not decode is written
// as an empty array.
func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Strings())
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = NewStringList()
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = SerializedStringList(text)
	default:
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = NewStringList(items...)
	}
	return nil
}

// Value stores the list as JSON text.
func (l StringList) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = NewStringList()
	case []byte:
		*l = SerializedStringList(string(v))
	case string:
		*l = SerializedStringList(v)
	default:
		return errors.Errorf("string list: cannot scan %T", src)
	}
	return nil
}
