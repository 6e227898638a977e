package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CollectionName is the store collection holding the aggregated jobs.
const CollectionName = "jobs"

const (
	StatusNotApplied = "Not Applied"
	StatusApplied    = "Applied"
)

// Job is a fully normalised job record as served to clients.
type Job struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Salary   string   `json:"salary"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
	Posted   string   `json:"posted"`
	Status   string   `json:"status"`
	Link     string   `json:"link"`
	Expires  string   `json:"expires"`
}

// Raw is a job record as persisted. Sources disagree on the type of id and
// skills so both are kept undecoded until Normalize.
type Raw struct {
	ID       json.RawMessage `json:"id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Company  string          `json:"company,omitempty"`
	Salary   string          `json:"salary,omitempty"`
	Location string          `json:"location,omitempty"`
	Skills   json.RawMessage `json:"skills,omitempty"`
	Posted   string          `json:"posted,omitempty"`
	Status   string          `json:"status,omitempty"`
	Link     string          `json:"link,omitempty"`
	Expires  string          `json:"expires,omitempty"`

	// extra fields returned by Jooble
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"`
	Type    string `json:"type,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// UnmarshalJSON accepts any JSON scalar for the text fields so one badly
// typed field does not reject the whole record. Objects and arrays in a
// text field decode as empty and get their default on Normalize.
func (r *Raw) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*r = Raw{
		ID:       fields["id"],
		Title:    scalar(fields["title"]),
		Company:  scalar(fields["company"]),
		Salary:   scalar(fields["salary"]),
		Location: scalar(fields["location"]),
		Skills:   fields["skills"],
		Posted:   scalar(fields["posted"]),
		Status:   scalar(fields["status"]),
		Link:     scalar(fields["link"]),
		Expires:  scalar(fields["expires"]),
		Snippet:  scalar(fields["snippet"]),
		Source:   scalar(fields["source"]),
		Type:     scalar(fields["type"]),
		Updated:  scalar(fields["updated"]),
	}
	return nil
}

func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return fmt.Sprint(s)
	}
	return ""
}

func (j Job) Raw() Raw {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	s, _ := json.Marshal(skills)
	return Raw{
		ID:       json.RawMessage(strconv.FormatInt(j.ID, 10)),
		Title:    j.Title,
		Company:  j.Company,
		Salary:   j.Salary,
		Location: j.Location,
		Skills:   s,
		Posted:   j.Posted,
		Status:   j.Status,
		Link:     j.Link,
		Expires:  j.Expires,
	}
}

func Raws(jobs []Job) []Raw {
	out := make([]Raw, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Raw())
	}
	return out
}
