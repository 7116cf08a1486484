package output

import (
	"fmt"
	"io"

	"github.com/dshills/commitgate/internal/pipeline"
)

// Writer renders a pipeline result in a specific format.
type Writer interface {
	Write(w io.Writer, res pipeline.RunResult) error
}

// Options tune the writers that support them.
type Options struct {
	NoColor bool
}

// Formats lists the accepted --format values.
var Formats = []string{"text", "json"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{NoColor: opts.NoColor}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
