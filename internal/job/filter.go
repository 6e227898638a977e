package job

import "strings"

// Filter keeps the jobs matching both criteria, case-insensitively. search
// matches title, company or any skill, location matches the location.
// Empty criteria match everything. jobs must already be normalised.
func Filter(jobs []Job, search, location string) []Job {
	search = strings.ToLower(strings.TrimSpace(search))
	location = strings.ToLower(strings.TrimSpace(location))
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if search != "" && !matchesSearch(j, search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesSearch(j Job, search string) bool {
	if strings.Contains(strings.ToLower(j.Title), search) || strings.Contains(strings.ToLower(j.Company), search) {
		return true
	}
	for _, s := range j.Skills {
		if strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}
