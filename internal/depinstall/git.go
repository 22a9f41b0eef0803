// SPDX-License-Identifier: MPL-2.0

package depinstall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"

	"github.com/cabinet/cabinet/internal/manifest"
)

// GitError names the dependency and operation a Git failure occurred
// during, per §4.D's "propagate as errors naming the dependency".
type GitError struct {
	Name string
	Op   string
	Err  error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git dependency %q: %s: %v", e.Name, e.Op, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// GitFetcher clones and checks out Git dependencies under a cache root,
// grounded on the teacher's GitFetcher (open-or-clone, then checkout).
type GitFetcher struct {
	CacheRoot string
}

// NewGitFetcher returns a fetcher rooted at cacheRoot.
func NewGitFetcher(cacheRoot string) *GitFetcher {
	return &GitFetcher{CacheRoot: cacheRoot}
}

// cachePath implements §4.D's layout: <cache-root>/git/src/<name>[-<target>].
func (f *GitFetcher) cachePath(dep manifest.Dependency) string {
	dir := dep.Name
	if dep.Target != "" {
		dir += "-" + dep.Target
	}
	return filepath.Join(f.CacheRoot, "git", "src", dir)
}

// Fetch clones dep.URL into its cache directory if that directory does not
// exist or is empty, then checks out dep.Target (if present) in
// detached-HEAD mode, and returns the resulting directory.
func (f *GitFetcher) Fetch(ctx context.Context, dep manifest.Dependency) (string, error) {
	dest := f.cachePath(dep)

	empty, err := dirMissingOrEmpty(dest)
	if err != nil {
		return "", &GitError{Name: dep.Name, Op: "stat cache dir", Err: err}
	}
	if !empty {
		return dest, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", &GitError{Name: dep.Name, Op: "create cache dir", Err: err}
	}

	// Clone into a scratch directory first and rename into place once
	// complete, so a clone interrupted mid-transfer never leaves dest
	// looking like a populated (but corrupt) cache entry.
	scratch := dest + ".tmp-" + uuid.New().String()
	repo, err := git.PlainCloneContext(ctx, scratch, false, &git.CloneOptions{URL: dep.URL})
	if err != nil {
		_ = os.RemoveAll(scratch)
		return "", &GitError{Name: dep.Name, Op: "clone " + dep.URL, Err: err}
	}

	if dep.Target != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(dep.Target))
		if err != nil {
			_ = os.RemoveAll(scratch)
			return "", &GitError{Name: dep.Name, Op: "resolve revspec " + dep.Target, Err: err}
		}

		worktree, err := repo.Worktree()
		if err != nil {
			_ = os.RemoveAll(scratch)
			return "", &GitError{Name: dep.Name, Op: "open worktree", Err: err}
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			_ = os.RemoveAll(scratch)
			return "", &GitError{Name: dep.Name, Op: "checkout " + dep.Target, Err: err}
		}
	}

	if err := os.Rename(scratch, dest); err != nil {
		_ = os.RemoveAll(scratch)
		return "", &GitError{Name: dep.Name, Op: "install into cache dir", Err: err}
	}

	return dest, nil
}

func dirMissingOrEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}

// resolveGit turns a fetched Git dependency directory into its flag
// contribution: the include/ subdirectory if present and nonempty,
// otherwise the whole clone directory, always as an -isystem path. Per
// §4.D, Git dependencies never contribute libs.
func resolveGit(dep manifest.Dependency, dir string) ResolvedDep {
	includeDir := filepath.Join(dir, "include")
	empty, err := dirMissingOrEmpty(includeDir)
	if err == nil && !empty {
		return ResolvedDep{Name: dep.Name, IsystemDirs: []string{includeDir}}
	}
	return ResolvedDep{Name: dep.Name, IsystemDirs: []string{dir}}
}
