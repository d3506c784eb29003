package explore

import (
	"io/fs"
	"iter"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// Entry is one node yielded by a walk.
type Entry struct {
	// Path is the filesystem path, rooted the same way as the walk root.
	Path string
	// Rel is the slash-separated path relative to the walk root.
	Rel   string
	Name  string
	IsDir bool
	// Size is the file size in bytes, or -1 when it cannot be determined.
	Size int64
}

// Walk returns a lazy depth-first traversal of root in lexical order.
//
// Pruned directories are dropped before they are read, so nothing beneath them is
// ever opened. Symlinked directories are not followed. A directory that cannot be
// read is reported as a non-nil error paired with its entry and the walk continues
// with its siblings. Symlinked files rejected by the link guard are skipped. The sequence can be ranged over any number of times; each
// range re-reads the filesystem.
func (e *Explorer) Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		e.walkDir(root, "", yield)
	}
}

func (e *Explorer) walkDir(dir, rel string, yield func(Entry, error) bool) bool {
	infos, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return yield(Entry{Path: dir, Rel: rel, Name: filepath.Base(dir), IsDir: true, Size: -1}, err)
	}

	for _, info := range infos {
		name := info.Name()
		entry := Entry{
			Path: filepath.Join(dir, name),
			Rel:  path.Join(rel, name),
			Name: name,
		}

		if info.IsDir() {
			if e.policy.Pruned(name) {
				continue
			}
			entry.IsDir = true
			entry.Size = -1
			if !yield(entry, nil) {
				return false
			}
			if !e.walkDir(entry.Path, entry.Rel, yield) {
				return false
			}
			continue
		}

		if info.Mode()&fs.ModeSymlink != 0 && e.linkGuard != nil {
			if err := e.linkGuard(entry.Path); err != nil {
				e.logger.Debug("Skipping guarded symlink", slog.String("path", entry.Path), slog.Any("error", err))
				continue
			}
		}

		target := e.resolve(entry.Path, info)
		switch {
		case target == nil:
			entry.Size = -1
		case target.IsDir():
			continue
		default:
			entry.Size = target.Size()
		}
		if !yield(entry, nil) {
			return false
		}
	}
	return true
}
