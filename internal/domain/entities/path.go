package entities

import (
	"path/filepath"
	"strings"
)

// unsafeNameChars are rejected in repository names: path separators,
// shell-relevant and Windows-forbidden characters.
const unsafeNameChars = `/\:*?"<>|`

// ResolveRepoPath joins a repository name under the base folder and returns
// the validated absolute path. It fails with a PathValidationError when the
// name contains null bytes, control characters, filesystem-unsafe characters,
// or resolves outside the base folder. Pure function, no side effects; every
// filesystem or subprocess operation that embeds an API-supplied repository
// name must go through it first.
func ResolveRepoPath(baseFolder, name string) (string, error) {
	if !filepath.IsAbs(baseFolder) {
		return "", &PathValidationError{Path: baseFolder, Reason: "base folder must be an absolute path"}
	}

	if name == "" {
		return "", &PathValidationError{Path: name, Reason: "repository name is empty"}
	}
	if name == "." || name == ".." || strings.HasPrefix(name, "..") {
		return "", &PathValidationError{Path: name, Reason: "repository name traverses directories"}
	}
	if strings.ContainsAny(name, unsafeNameChars) {
		return "", &PathValidationError{Path: name, Reason: "repository name contains unsafe characters"}
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return "", &PathValidationError{Path: name, Reason: "repository name contains control characters"}
		}
	}

	base := filepath.Clean(baseFolder)
	resolved := filepath.Clean(filepath.Join(base, name))
	if resolved == base || !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
		return "", &PathValidationError{Path: resolved, Reason: "path escapes the base folder"}
	}

	return resolved, nil
}
