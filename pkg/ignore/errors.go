package ignore

import (
	"strconv"

	"github.com/Aman-CERP/ignorelib/internal/errors"
)

// Caller contract violations. Returned errors carry the offending value as a
// detail and match these sentinels with errors.Is.
var (
	// ErrPathOutsideRoot is returned for query paths that escape the root.
	ErrPathOutsideRoot = errors.New(errors.ErrCodePathOutsideRoot, "path is outside root", nil)

	// ErrInvalidPath is returned for empty, absolute or root-only query paths.
	ErrInvalidPath = errors.New(errors.ErrCodeInvalidPath, "invalid path", nil)

	// ErrInvalidRoot is returned by New when the root is not a directory.
	ErrInvalidRoot = errors.New(errors.ErrCodeInvalidRoot, "invalid root", nil)

	// ErrInvalidIgnoreFileName is returned by New for ignore file names that
	// are not a bare basename.
	ErrInvalidIgnoreFileName = errors.New(errors.ErrCodeInvalidIgnoreFileName, "invalid ignore file name", nil)
)

func pathOutsideRoot(p string) error {
	return errors.New(errors.ErrCodePathOutsideRoot, "path escapes the root: "+p, nil).
		WithDetail("path", p).
		WithSuggestion("Use a path relative to the root without leading ..")
}

func invalidPath(p, reason string) error {
	return errors.New(errors.ErrCodeInvalidPath, "invalid path "+strconv.Quote(p)+": "+reason, nil).
		WithDetail("path", p)
}

func invalidRoot(root string, cause error) error {
	return errors.New(errors.ErrCodeInvalidRoot, "root is not a readable directory: "+root, cause).
		WithDetail("root", root).
		WithSuggestion("Pass an existing directory as the root")
}

func invalidIgnoreFileName(name string) error {
	return errors.New(errors.ErrCodeInvalidIgnoreFileName, "ignore file name must be a bare file name: "+strconv.Quote(name), nil).
		WithDetail("name", name)
}

func readDirFailed(dir string, cause error) error {
	return errors.New(errors.ErrCodeWalkFailed, "failed to read directory "+strconv.Quote(dir), cause).
		WithDetail("dir", dir)
}
