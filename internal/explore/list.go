package explore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// EmptyDirectory is returned by ListFiles when no visible entries remain after pruning.
const EmptyDirectory = "Directory is empty."

// ListFiles lists the immediate children of dir in lexical order. Directories are
// marked with a trailing slash, files carry their size. Pruned directories are
// hidden and the listing is cut at the policy's entry ceiling. An empty dir
// defaults to the current directory.
func (e *Explorer) ListFiles(dir string) Result {
	if dir == "" {
		dir = "."
	}

	if err := e.checkDir(dir); err != nil {
		return errorResult(err)
	}

	infos, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return errorResult(errors.FromFS(err, dir))
	}

	limit := e.policy.limits.MaxListEntries
	lines := make([]string, 0, min(len(infos), limit))
	for _, info := range infos {
		if len(lines) >= limit {
			break
		}

		name := info.Name()
		if info.IsDir() {
			if e.policy.Pruned(name) {
				continue
			}
			lines = append(lines, "- "+name+"/")
			continue
		}

		target := e.resolve(filepath.Join(dir, name), info)
		switch {
		case target == nil:
			lines = append(lines, fmt.Sprintf("- %s (%s)", name, formatKB(-1)))
		case target.IsDir():
			lines = append(lines, "- "+name+"/")
		default:
			lines = append(lines, fmt.Sprintf("- %s (%s)", name, formatKB(target.Size())))
		}
	}

	if len(lines) == 0 {
		return noResult(EmptyDirectory)
	}
	return okResult(strings.Join(lines, "\n"))
}
