// Package locate resolves shared-library sonames to filesystem paths.
//
// Resolution mirrors the dynamic linker's behavior closely enough for graph
// construction: the linker cache is consulted first, then LD_LIBRARY_PATH,
// then any configured extra directories, then the conventional system
// directories, and finally the directory of the binary under analysis. The
// first resolver that produces an existing regular file wins.
package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by [Locator.Locate] when no resolver in the chain
// can produce a path for a soname. Callers typically warn and prune the
// affected branch rather than abort.
var ErrNotFound = errors.New("shared library not found")

// SystemDirs lists the conventional shared-library directories checked when
// the linker cache and environment provide no answer.
var SystemDirs = []string{
	"/lib",
	"/lib64",
	"/usr/lib",
	"/usr/lib64",
	"/usr/lib32",
	"/usr/local/lib",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/i386-linux-gnu",
}

// Resolver locates a shared library by soname. Implementations return
// ok=false when they cannot answer, letting the chain move on.
type Resolver interface {
	// Resolve returns the path of an existing regular file for soname.
	Resolve(ctx context.Context, soname string) (path string, ok bool)
	// Name identifies the resolver in diagnostics (e.g., "ld.so.cache").
	Name() string
}

// Locator tries an ordered chain of resolvers and returns the first hit.
type Locator struct {
	resolvers []Resolver
}

// NewLocator builds a Locator that consults resolvers in the given order.
func NewLocator(resolvers ...Resolver) *Locator {
	return &Locator{resolvers: resolvers}
}

// Default builds the standard chain for a binary at origin: linker cache,
// LD_LIBRARY_PATH, extraDirs (when present), the system directories, and
// the binary's own directory.
func Default(origin string, extraDirs []string) *Locator {
	resolvers := []Resolver{
		LDCache{},
		EnvPath{Var: "LD_LIBRARY_PATH"},
	}
	if len(extraDirs) > 0 {
		resolvers = append(resolvers, Dirs{Label: "search paths", Paths: extraDirs})
	}
	resolvers = append(resolvers,
		Dirs{Label: "system directories", Paths: SystemDirs},
		OriginDir{Origin: origin},
	)
	return NewLocator(resolvers...)
}

// Locate resolves soname through the chain. It returns ErrNotFound when
// every resolver misses. Each call re-runs the chain; nothing is memoized,
// so results track the live filesystem and linker cache.
func (l *Locator) Locate(ctx context.Context, soname string) (string, error) {
	for _, r := range l.resolvers {
		if path, ok := r.Resolve(ctx, soname); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, soname)
}

// EnvPath resolves sonames against the directories listed in a
// colon-separated environment variable such as LD_LIBRARY_PATH.
// The variable is read on every call, in listed order.
type EnvPath struct {
	Var string
}

// Name returns the variable reference (e.g., "$LD_LIBRARY_PATH").
func (e EnvPath) Name() string { return "$" + e.Var }

// Resolve checks each directory of the variable for soname.
func (e EnvPath) Resolve(_ context.Context, soname string) (string, bool) {
	for _, dir := range filepath.SplitList(os.Getenv(e.Var)) {
		if dir == "" {
			continue
		}
		if path, ok := statLib(filepath.Join(dir, soname)); ok {
			return path, true
		}
	}
	return "", false
}

// Dirs resolves sonames against a fixed, ordered list of directories.
type Dirs struct {
	Label string // shown in diagnostics
	Paths []string
}

// Name returns the configured label.
func (d Dirs) Name() string { return d.Label }

// Resolve checks each directory for soname in order.
func (d Dirs) Resolve(_ context.Context, soname string) (string, bool) {
	for _, dir := range d.Paths {
		if path, ok := statLib(filepath.Join(dir, soname)); ok {
			return path, true
		}
	}
	return "", false
}

// OriginDir resolves sonames against the directory containing the analyzed
// binary, the last resort for bundled libraries shipped next to an
// executable.
type OriginDir struct {
	Origin string // path of the binary under analysis
}

// Name identifies the resolver as the binary's own directory.
func (o OriginDir) Name() string { return "origin directory" }

// Resolve checks the binary's directory for soname.
func (o OriginDir) Resolve(_ context.Context, soname string) (string, bool) {
	return statLib(filepath.Join(filepath.Dir(o.Origin), soname))
}

// statLib reports whether path exists as a regular file. Stat (not Lstat)
// follows symlinks, so a link to a real library counts.
func statLib(path string) (string, bool) {
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return "", false
	}
	return path, true
}
