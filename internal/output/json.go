package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/commitgate/internal/pipeline"
	"github.com/dshills/commitgate/internal/review"
)

// JSONWriter outputs the run result as indented JSON. HTML escaping is off
// so placeholders such as "<number>" in expected_format stay literal, and
// checks and findings always encode as arrays.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, res pipeline.RunResult) error {
	if res.Checks == nil {
		res.Checks = []pipeline.CheckStatus{}
	}
	if res.Findings == nil {
		res.Findings = []review.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
