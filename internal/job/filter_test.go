package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func titles(jobs []Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestFilter(t *testing.T) {
	jobs := TimesJobsFallback()

	assert.Len(t, Filter(jobs, "", ""), 5)
	assert.Equal(t, []string{"Python Developer", "Data Scientist"}, titles(Filter(jobs, "PYTHON", "")))
	assert.Equal(t, []string{"Python Developer"}, titles(Filter(jobs, "tcs", "")))
	assert.Equal(t, []string{"DevOps Engineer"}, titles(Filter(jobs, "kubernetes", "")))
	assert.Equal(t, []string{"Data Scientist"}, titles(Filter(jobs, "python", "pune")))
	assert.Equal(t, []string{"UI/UX Designer"}, titles(Filter(jobs, "", "delhi")))
	assert.Empty(t, Filter(jobs, "cobol", ""))
}

func TestFilterRunsOnNormalisedRecords(t *testing.T) {
	// a record without location or skills still matches the defaults
	jobs := NormalizeAll([]Raw{
		{Title: "Go Developer", Skills: json.RawMessage(`"Go"`)},
		{Company: "Acme"},
	})

	assert.Equal(t, []string{"Go Developer", DefaultTitle}, titles(Filter(jobs, "", "remote")))
	assert.Equal(t, []string{"Go Developer"}, titles(Filter(jobs, "go", "")))
	assert.Equal(t, []string{DefaultTitle}, titles(Filter(jobs, "not specified", "")))
}
