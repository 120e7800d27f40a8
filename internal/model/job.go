package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// NullString is a nullable text value decoded leniently from JSON.
// Strings are kept as-is; numbers and booleans keep their literal text, so a
// webhook sending "salary": 120000 still stores "120000".
type NullString struct {
	String string
	Valid  bool
}

// NewNullString returns a valid NullString holding s.
func NewNullString(s string) NullString {
	return NullString{String: s, Valid: true}
}

func (n *NullString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = NullString{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NewNullString(s)
		return nil
	}
	*n = NewNullString(string(b))
	return nil
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

// Value implements driver.Valuer so missing fields are written as NULL.
func (n NullString) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.String, nil
}

// OrDefault returns the held string, or def when the value is absent.
func (n NullString) OrDefault(def string) string {
	if !n.Valid {
		return def
	}
	return n.String
}

// SkillList accepts either a JSON array or a single string.
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = nil
		return nil
	case b[0] == '"':
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		if one == "" {
			*s = nil
		} else {
			*s = SkillList{one}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(SkillList, 0, len(raw))
	for _, item := range raw {
		var v NullString
		if err := v.UnmarshalJSON(item); err != nil {
			return err
		}
		if v.Valid {
			out = append(out, v.String)
		}
	}
	*s = out
	return nil
}

// Joined flattens the list into the comma-separated form stored in the database.
func (s SkillList) Joined() string {
	return strings.Join(s, ",")
}

// JobPosting is a single job pushed back by the automation webhook.
type JobPosting struct {
	Title      NullString `json:"title"`
	Company    NullString `json:"company"`
	Location   NullString `json:"location"`
	Salary     NullString `json:"salary"`
	URL        NullString `json:"url"`
	Skills     SkillList  `json:"skills,omitempty"`
	Experience NullString `json:"experience"`
}

// UnmarshalJSON also accepts "job_url" as an alias for "url".
func (j *JobPosting) UnmarshalJSON(b []byte) error {
	type plain JobPosting
	var aux struct {
		plain
		JobURL NullString `json:"job_url"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*j = JobPosting(aux.plain)
	if !j.URL.Valid {
		j.URL = aux.JobURL
	}
	return nil
}

// JobBatch is the body of a save_jobs push.
type JobBatch struct {
	Jobs []JobPosting `json:"jobs"`
}
