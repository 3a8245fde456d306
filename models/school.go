package models

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// School is one row of the schools table as served by GET /schools.
type School struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Contact      string     `json:"contact"`
	Image        string     `json:"image"`
	EmailID      string     `json:"email_id"`
	Description  string     `json:"description"`
	Established  string     `json:"established"`
	StudentCount string     `json:"studentCount"`
	Facilities   StringList `json:"facilities"`
	Achievements StringList `json:"achievements"`
}

// SchoolInput is the body accepted by POST /schools.
type SchoolInput struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Contact      Text     `json:"contact"`
	Image        string   `json:"image,omitempty"`
	EmailID      string   `json:"email_id,omitempty"`
	Description  string   `json:"description,omitempty"`
	Established  string   `json:"established,omitempty"`
	StudentCount string   `json:"studentCount,omitempty"`
	Facilities   []string `json:"facilities,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// HasRequired reports whether every field the store requires is non-empty.
func (in SchoolInput) HasRequired() bool {
	return in.Name != "" && in.Address != "" && in.City != "" && in.State != "" && in.Contact != ""
}

// Text is a string field that also accepts a bare JSON number, kept as the
// number's literal text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.Wrap(err, "text")
		}
		*t = Text(n.String())
	}
	return nil
}
