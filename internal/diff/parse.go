package diff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/sprite-ai/prsift/internal/model"
)

// ParseUnified parses a raw unified diff into FileChange records, one per
// file, with per-file patch text reconstructed from the parsed fragments.
// Binary files come back with an empty patch.
func ParseUnified(raw string) ([]model.FileChange, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	files := make([]model.FileChange, 0, len(parsed))
	for _, f := range parsed {
		fc := model.FileChange{
			Path:   f.NewName,
			Status: statusOf(f),
		}
		if fc.Path == "" {
			fc.Path = f.OldName
		}
		if f.IsRename {
			fc.PreviousPath = f.OldName
		}

		var patch strings.Builder
		for _, frag := range f.TextFragments {
			patch.WriteString(frag.Header())
			patch.WriteByte('\n')
			for _, line := range frag.Lines {
				patch.WriteString(line.String())
				switch line.Op {
				case gitdiff.OpAdd:
					fc.Additions++
				case gitdiff.OpDelete:
					fc.Deletions++
				}
			}
		}
		if !f.IsBinary {
			fc.Patch = patch.String()
		}
		fc.Changes = fc.Additions + fc.Deletions

		files = append(files, fc)
	}

	return files, nil
}

func statusOf(f *gitdiff.File) string {
	switch {
	case f.IsNew:
		return "added"
	case f.IsDelete:
		return "removed"
	case f.IsRename:
		return "renamed"
	default:
		return "modified"
	}
}
