package checks

import (
	"fmt"

	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/gitctx"
	"github.com/dshills/commitgate/internal/review"
)

type largeFiles struct{}

func (largeFiles) Name() string { return config.CheckLargeFiles }

func (l largeFiles) Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error) {
	limit := cfg.MaxSizeBytes
	if limit <= 0 {
		limit = config.DefaultMaxSizeBytes
	}
	var findings []review.Finding
	for _, f := range cs.Files {
		if f.Status == gitctx.StatusDeleted || f.SizeBytes < 0 {
			continue
		}
		if f.SizeBytes > limit {
			findings = append(findings, review.Finding{
				Check:    l.Name(),
				Severity: review.SeverityFor(cfg.Blocking),
				Path:     f.Path,
				Message:  fmt.Sprintf("%s exceeds the %s limit", FormatBytes(f.SizeBytes), FormatBytes(limit)),
				Count:    1,
			})
		}
	}
	return findings, nil
}

type emptyFiles struct{}

func (emptyFiles) Name() string { return config.CheckEmptyFiles }

func (e emptyFiles) Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error) {
	var findings []review.Finding
	for _, f := range cs.Files {
		if f.Status != gitctx.StatusAdded && f.Status != gitctx.StatusModified {
			continue
		}
		if f.SizeBytes == 0 {
			findings = append(findings, review.Finding{
				Check:    e.Name(),
				Severity: review.SeverityFor(cfg.Blocking),
				Path:     f.Path,
				Message:  "file is empty",
				Count:    1,
			})
		}
	}
	return findings, nil
}

// FormatBytes renders n using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
