package gitignore

import (
	"errors"
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

var errInvalidPattern = errors.New("invalid pattern")

// DefaultCacheSize is the default number of translated patterns a Compiler keeps.
const DefaultCacheSize = 1024

// Compiler compiles pattern lines with a shared ignore-case setting and
// caches the resulting regular expressions, so the same pattern repeated
// across many ignore files is only compiled once.
// A Compiler is safe for concurrent use. A nil *Compiler compiles
// case-sensitively without caching.
type Compiler struct {
	ignoreCase bool
	cache      *lru.Cache[string, *regexp.Regexp]
}

// NewCompiler creates a Compiler. A cacheSize of zero or less selects
// DefaultCacheSize.
func NewCompiler(ignoreCase bool, cacheSize int) (*Compiler, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}

	return &Compiler{
		ignoreCase: ignoreCase,
		cache:      cache,
	}, nil
}

// IgnoreCase reports whether compiled rules match case-insensitively.
func (c *Compiler) IgnoreCase() bool {
	return c != nil && c.ignoreCase
}

// Compile compiles one raw line. See the package-level Compile.
func (c *Compiler) Compile(line string, src Source) (Rule, bool) {
	if c == nil {
		return Compile(line, src, false)
	}
	return compile(line, src, c.ignoreCase, c.regexp)
}

// regexp returns the compiled expression for src, compiling it on a miss.
// Invalid expressions are cached as nil.
func (c *Compiler) regexp(src string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(src); ok {
		if re == nil {
			return nil, errInvalidPattern
		}
		return re, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		c.cache.Add(src, nil)
		return nil, err
	}
	c.cache.Add(src, re)
	return re, nil
}

// Len returns the number of cached expressions.
func (c *Compiler) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
