package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDecodesBadlyTypedFields(t *testing.T) {
	var r Raw
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "2",
		"title": 404,
		"company": true,
		"salary": null,
		"location": {"city": "Pune"},
		"skills": "Go",
		"posted": ["yesterday"],
		"snippet": "kept"
	}`), &r))

	assert.Equal(t, json.RawMessage(`"2"`), r.ID)
	assert.Equal(t, "404", r.Title)
	assert.Equal(t, "true", r.Company)
	assert.Empty(t, r.Salary)
	assert.Empty(t, r.Location)
	assert.Equal(t, json.RawMessage(`"Go"`), r.Skills)
	assert.Empty(t, r.Posted)
	assert.Equal(t, "kept", r.Snippet)

	j := Normalize(r)
	assert.Equal(t, int64(2), j.ID)
	assert.Equal(t, "404", j.Title)
	assert.Equal(t, DefaultSalary, j.Salary)
	assert.Equal(t, DefaultLocation, j.Location)
	assert.Equal(t, DefaultPosted, j.Posted)
	assert.Equal(t, []string{"Go"}, j.Skills)
}

func TestRawRejectsNonObjects(t *testing.T) {
	for _, in := range []string{`5`, `"job"`, `[1,2]`} {
		var r Raw
		assert.Error(t, json.Unmarshal([]byte(in), &r), in)
	}
}

func TestRawRoundTrip(t *testing.T) {
	in := Raw{
		ID:      json.RawMessage(`7`),
		Title:   "Go Developer",
		Skills:  json.RawMessage(`["Go","SQL"]`),
		Link:    "https://example.com/job/7",
		Snippet: "jooble snippet",
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Raw
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
