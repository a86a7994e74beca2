// Package cache manages the on-disk artifact cache for generated LTS
// files: one directory entry per shape key, content-addressed so two
// nodes whose automata are structurally identical (same ShapeKey) share
// a single generated artifact, plus a ".valid" sentinel recording the
// format version the artifact was written with so a version bump forces
// regeneration instead of silently reusing stale output.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrStale indicates an on-disk artifact exists but was written by a
// different format version and must be regenerated.
var ErrStale = errors.New("cache: artifact format version mismatch")

// Cache is a directory-backed store of generated artifacts, keyed by
// automaton.Automaton.ShapeKey.
type Cache struct {
	Root          string
	FormatVersion string
}

// New returns a Cache rooted at dir, using formatVersion to invalidate
// artifacts written by an older or newer generator.
func New(dir, formatVersion string) *Cache {
	return &Cache{Root: dir, FormatVersion: formatVersion}
}

func (c *Cache) pathFor(shapeKey, ext string) string {
	return filepath.Join(c.Root, sanitize(shapeKey)+"."+ext)
}

func (c *Cache) validPath(shapeKey string) string {
	return filepath.Join(c.Root, sanitize(shapeKey)+".valid")
}

// Lookup returns the path to a cached artifact for shapeKey/ext if one
// exists and matches c.FormatVersion, logging the hit or miss. A
// version-mismatched artifact is reported as a miss (via ErrStale) so
// the caller regenerates rather than trusting stale output.
func (c *Cache) Lookup(shapeKey, ext string) (string, error) {
	path := c.pathFor(shapeKey, ext)
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("shape", shapeKey).Str("ext", ext).Msg("cache miss: no artifact")
		return "", err
	}
	version, err := os.ReadFile(c.validPath(shapeKey))
	if err != nil {
		log.Debug().Str("shape", shapeKey).Msg("cache miss: no .valid sentinel")
		return "", err
	}
	if string(version) != c.FormatVersion {
		log.Warn().Str("shape", shapeKey).Str("have", string(version)).Str("want", c.FormatVersion).Msg("cache stale: format version mismatch")
		return "", ErrStale
	}
	log.Debug().Str("shape", shapeKey).Str("ext", ext).Msg("cache hit")
	return path, nil
}

// Store writes data under shapeKey/ext and stamps the .valid sentinel
// with the cache's current format version.
func (c *Cache) Store(shapeKey, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return "", fmt.Errorf("cache: create root: %w", err)
	}
	path := c.pathFor(shapeKey, ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("cache: write artifact: %w", err)
	}
	if err := os.WriteFile(c.validPath(shapeKey), []byte(c.FormatVersion), 0o644); err != nil {
		return "", fmt.Errorf("cache: write sentinel: %w", err)
	}
	log.Debug().Str("shape", shapeKey).Str("ext", ext).Msg("cache store")
	return path, nil
}

// sanitize maps a ShapeKey (which may contain '|', ',', etc.) to a safe
// filename component.
func sanitize(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
