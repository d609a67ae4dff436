// Package paths expands special-folder tokens embedded in configured paths
// into absolute filesystem paths. Tokens are registered in a resolver
// registry so new tokens can be added without changing call sites.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolverFunc resolves a single token to an absolute directory path.
type ResolverFunc func() (string, error)

// Built-in token names. Tokens are written into configured paths verbatim,
// e.g. "{Desktop}/inbox".
const (
	TokenDesktop      = "{Desktop}"
	TokenLocalAppData = "{LocalAppData}"
	TokenAppData      = "{AppData}"
)

// Resolver substitutes registered special-folder tokens in path strings.
// The zero value is unusable; construct with NewResolver.
type Resolver struct {
	tokens map[string]ResolverFunc
}

// NewResolver returns a Resolver with the built-in tokens registered:
// {Desktop}, {LocalAppData} (machine-local application data) and {AppData}
// (roaming application data).
func NewResolver() *Resolver {
	r := &Resolver{tokens: make(map[string]ResolverFunc)}
	r.Register(TokenDesktop, desktopDir)
	r.Register(TokenLocalAppData, os.UserCacheDir)
	r.Register(TokenAppData, os.UserConfigDir)
	return r
}

// Register adds or replaces a token resolver. Callers that need additional
// special folders register them here; Resolve picks them up without any
// other change.
func (r *Resolver) Register(token string, fn ResolverFunc) {
	r.tokens[token] = fn
}

// Resolve replaces every occurrence of every registered token in path with
// its resolved directory. Unregistered tokens are left verbatim. A path
// containing no tokens is returned unchanged. Resolution errors (e.g. no
// home directory) propagate to the caller because continuing with an
// unresolved path would watch the wrong location.
func (r *Resolver) Resolve(path string) (string, error) {
	resolved := path
	for token, fn := range r.tokens {
		if !strings.Contains(resolved, token) {
			continue
		}
		dir, err := fn()
		if err != nil {
			return "", err
		}
		resolved = strings.ReplaceAll(resolved, token, dir)
	}
	return resolved, nil
}

// desktopDir resolves the current user's desktop directory. There is no
// cross-platform stdlib accessor for this, so it is derived from the home
// directory, which matches the conventional location on the platforms this
// service targets.
func desktopDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}
