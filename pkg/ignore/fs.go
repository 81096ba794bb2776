package ignore

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FileSystem is the read-only view of the tree a Manager needs.
// Names are absolute, OS-specific paths.
type FileSystem interface {
	// ReadFile returns the full content of a file.
	ReadFile(name string) ([]byte, error)
	// Stat returns file info, following symlinks.
	Stat(name string) (os.FileInfo, error)
	// Lstat returns file info without following a final symlink.
	Lstat(name string) (os.FileInfo, error)
	// ReadDir lists a directory without following symlinks in its entries.
	ReadDir(name string) ([]os.FileInfo, error)
}

// billyFileSystem adapts a billy filesystem.
type billyFileSystem struct {
	fs billy.Filesystem
}

// NewBillyFileSystem adapts any billy filesystem (osfs, memfs, ...).
func NewBillyFileSystem(fs billy.Filesystem) FileSystem {
	return &billyFileSystem{fs: fs}
}

// OSFileSystem returns a FileSystem over the host filesystem.
func OSFileSystem() FileSystem {
	return NewBillyFileSystem(osfs.New("/"))
}

func (b *billyFileSystem) ReadFile(name string) ([]byte, error) {
	f, err := b.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(f)
}

func (b *billyFileSystem) Stat(name string) (os.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *billyFileSystem) Lstat(name string) (os.FileInfo, error) {
	return b.fs.Lstat(name)
}

func (b *billyFileSystem) ReadDir(name string) ([]os.FileInfo, error) {
	return b.fs.ReadDir(name)
}
