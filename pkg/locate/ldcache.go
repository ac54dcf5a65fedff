package locate

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// LDCache resolves sonames through the dynamic linker cache by running
// `ldconfig -p`. Any failure — ldconfig missing from PATH, a non-zero exit,
// unparseable output — is a miss, never an error: systems without a usable
// cache simply fall through to the next resolver.
type LDCache struct{}

// Name identifies the resolver as the linker cache.
func (LDCache) Name() string { return "ld.so.cache" }

// Resolve queries the cache and returns the preferred path for soname.
// The cache is re-read on every call.
func (LDCache) Resolve(ctx context.Context, soname string) (string, bool) {
	if _, err := exec.LookPath("ldconfig"); err != nil {
		return "", false
	}

	cmd := exec.CommandContext(ctx, "ldconfig", "-p")
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return "", false
	}

	path, ok := ParseCache(&out)[soname]
	if !ok {
		return "", false
	}
	return statLib(path)
}

// ParseCache parses `ldconfig -p` output into a soname-to-path map.
//
// Entry lines look like:
//
//	libzstd.so.1 (libc6,x86-64) => /lib/x86_64-linux-gnu/libzstd.so.1
//
// The first entry for a soname wins, matching the linker's preference order
// when several architectures provide the same library. Lines without the
// " => " separator (such as the leading "N libs found in cache" banner) are
// ignored.
func ParseCache(r io.Reader) map[string]string {
	paths := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		before, after, ok := strings.Cut(sc.Text(), " => ")
		if !ok {
			continue
		}
		fields := strings.Fields(before)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if _, seen := paths[name]; !seen {
			paths[name] = strings.TrimSpace(after)
		}
	}
	return paths
}
