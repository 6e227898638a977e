package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/amankharwar575/kodJobs/internal/server"
)

func HealthHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// decodeBody decodes a JSON request body keeping numbers as json.Number so
// ids survive untouched.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// largest integer a float64 holds exactly
const maxExactFloatID = 1<<53 - 1

// parseJobID accepts a job id sent either as a JSON number or as a string
// of digits.
func parseJobID(v interface{}) (int64, bool) {
	switch id := v.(type) {
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n, true
		}
		if f, err := id.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactFloatID {
			return int64(f), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
