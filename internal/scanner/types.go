// Package scanner streams the files of a tree that survive ignore rules.
// It sits on top of ignore.Manager.Walk and adds glob selection, size
// limits and binary detection for consumers such as packagers and indexers.
package scanner

import (
	"time"
)

// FileInfo describes a file that passed every filter.
type FileInfo struct {
	Path    string    `json:"path"`     // Slash-separated path relative to the root
	AbsPath string    `json:"abs_path"` // Absolute path
	Size    int64     `json:"size"`     // File size in bytes
	ModTime time.Time `json:"mod_time"` // Last modification time
	Binary  bool      `json:"binary"`   // First bytes contain a NUL
}

// Options configures a scan.
type Options struct {
	// Include keeps only paths matching at least one doublestar pattern
	// (e.g. "**/*.go"). Empty keeps everything.
	Include []string

	// Exclude drops paths matching any doublestar pattern.
	Exclude []string

	// MaxFileSize drops files larger than this many bytes (0 = no limit).
	MaxFileSize int64

	// SkipBinary drops files detected as binary.
	SkipBinary bool

	// Workers is the number of concurrent inspectors (0 = NumCPU).
	Workers int

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool
}

// Result is sent on the scan channel. Exactly one field is set.
type Result struct {
	File  *FileInfo
	Error error
}

// binarySniffSize is how many leading bytes are checked for NUL.
const binarySniffSize = 512
