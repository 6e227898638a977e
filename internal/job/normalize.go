package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultTitle    = "Unknown Position"
	DefaultCompany  = "Unknown Company"
	DefaultLocation = "Remote"
	DefaultSalary   = "Not disclosed"
	DefaultPosted   = "Posted recently"
	DefaultLink     = "#"
	DefaultExpires  = "Not specified"
	DefaultSkill    = "Not specified"
)

// keeps ids within the range a JSON client can represent exactly
const maxSafeID = 1<<53 - 1

// HashID derives a stable non-negative id from s.
func HashID(s string) int64 {
	return int64(xxhash.Sum64String(s) & maxSafeID)
}

// Normalize fills every missing or empty field of r with its default and
// coerces id and skills into their canonical types.
func Normalize(r Raw) Job {
	return Job{
		ID:       normalizeID(r),
		Title:    orDefault(r.Title, DefaultTitle),
		Company:  orDefault(r.Company, DefaultCompany),
		Salary:   orDefault(r.Salary, DefaultSalary),
		Location: orDefault(r.Location, DefaultLocation),
		Skills:   normalizeSkills(r.Skills),
		Posted:   orDefault(r.Posted, DefaultPosted),
		Status:   orDefault(r.Status, StatusNotApplied),
		Link:     orDefault(r.Link, DefaultLink),
		Expires:  orDefault(r.Expires, DefaultExpires),
	}
}

func NormalizeAll(raws []Raw) []Job {
	out := make([]Job, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// Complete reports whether r is already in normalised form.
func Complete(r Raw) bool {
	n := Normalize(r)
	if r.Title != n.Title || r.Company != n.Company || r.Salary != n.Salary ||
		r.Location != n.Location || r.Posted != n.Posted || r.Status != n.Status ||
		r.Link != n.Link || r.Expires != n.Expires {
		return false
	}
	id, err := strconv.ParseInt(string(bytes.TrimSpace(r.ID)), 10, 64)
	if err != nil || id != n.ID {
		return false
	}
	var skills []string
	if err := json.Unmarshal(r.Skills, &skills); err != nil || len(skills) != len(n.Skills) {
		return false
	}
	for i := range skills {
		if skills[i] != n.Skills[i] {
			return false
		}
	}
	return true
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func normalizeID(r Raw) int64 {
	fallback := r.Link
	if strings.TrimSpace(fallback) == "" {
		fallback = r.Title
	}
	v, ok := decode(r.ID)
	if !ok {
		return HashID(fallback)
	}
	switch id := v.(type) {
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n
		}
		if f, err := id.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxSafeID {
			return int64(f)
		}
		return HashID(id.String())
	case string:
		s := strings.TrimSpace(id)
		if s == "" {
			return HashID(fallback)
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return HashID(s)
	}
	return HashID(fallback)
}

func normalizeSkills(raw json.RawMessage) []string {
	v, ok := decode(raw)
	if !ok {
		return []string{DefaultSkill}
	}
	var skills []string
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) != "" {
			skills = []string{s}
		}
	case []interface{}:
		for _, item := range s {
			switch it := item.(type) {
			case string:
				if strings.TrimSpace(it) != "" {
					skills = append(skills, it)
				}
			case json.Number:
				skills = append(skills, it.String())
			case bool:
				skills = append(skills, fmt.Sprint(it))
			}
		}
	}
	if len(skills) == 0 {
		return []string{DefaultSkill}
	}
	return skills
}

// decode returns false for absent or null values.
func decode(raw json.RawMessage) (interface{}, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	var v interface{}
	if err := d.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}
