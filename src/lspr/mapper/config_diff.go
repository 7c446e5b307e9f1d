package mapper

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber/lsp-router/src/lspr/entity"
)

// ConfigDiff renders the difference between two config snapshots as a single
// line suitable for logging. Deletions are wrapped in [-..-], insertions in
// [+..+].
func ConfigDiff(prev, next entity.ServerConfig) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prev.Fingerprint(), next.Fingerprint(), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(d.Text)
			b.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("[+")
			b.WriteString(d.Text)
			b.WriteString("+]")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
