package explore

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/d-kuro/peek-mcp/internal/errors"
	"github.com/d-kuro/peek-mcp/internal/logging"
)

// Explorer runs the exploration operations against a filesystem under a fixed policy.
// It holds no mutable state and is safe for concurrent use.
type Explorer struct {
	fs        afero.Fs
	policy    Policy
	logger    *logging.Logger
	linkGuard func(path string) error
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithFs sets the filesystem the explorer reads from. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(e *Explorer) {
		e.fs = fsys
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to a discarding logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithLinkGuard sets a check applied to every symlinked file a walk meets.
// Links the guard rejects are left out of the walk.
func WithLinkGuard(guard func(path string) error) Option {
	return func(e *Explorer) {
		e.linkGuard = guard
	}
}

// New creates an Explorer bound to policy.
func New(policy Policy, opts ...Option) *Explorer {
	e := &Explorer{
		fs:     afero.NewOsFs(),
		policy: policy,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the policy the explorer was built with.
func (e *Explorer) Policy() Policy {
	return e.policy
}

// checkDir verifies that dir exists and is a directory.
func (e *Explorer) checkDir(dir string) error {
	info, err := e.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.NotFound("directory not found: %s", dir)
		}
		return errors.FromFS(err, dir)
	}
	if !info.IsDir() {
		return errors.Access(nil, "not a directory: %s", dir)
	}
	return nil
}

// statFile verifies that path exists and is not a directory.
func (e *Explorer) statFile(path string) (fs.FileInfo, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("file not found: %s", path)
		}
		return nil, errors.FromFS(err, path)
	}
	if info.IsDir() {
		return nil, errors.Access(nil, "%s is a directory, not a file", path)
	}
	return info, nil
}

// resolve follows a symlink once. It returns nil when the link dangles.
func (e *Explorer) resolve(path string, info fs.FileInfo) fs.FileInfo {
	if info.Mode()&fs.ModeSymlink == 0 {
		return info
	}
	target, err := e.fs.Stat(path)
	if err != nil {
		return nil
	}
	return target
}
