// Package executil builds external commands against a sanitized PATH.
package executil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var defaultSafeDirs = []string{
	"/usr/local/bin",
	"/usr/bin",
	"/bin",
	"/usr/sbin",
	"/sbin",
	"/opt/homebrew/bin",
}

// Command builds an exec.Cmd with the executable resolved from a sanitized
// PATH. The sanitized PATH is also placed in the command's environment.
func Command(name string, args ...string) (*exec.Cmd, error) {
	dirs := safePathDirs()
	path, err := findExecutable(name, dirs)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, args...)
	cmd.Env = replaceEnv(os.Environ(), "PATH", strings.Join(dirs, string(os.PathListSeparator)))
	return cmd, nil
}

// Available reports whether an executable can be resolved for name.
func Available(name string) bool {
	_, err := findExecutable(name, safePathDirs())
	return err == nil
}

func safePathDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string

	add := func(dir string) {
		dir = filepath.Clean(dir)
		if dir == "" || !filepath.IsAbs(dir) {
			return
		}
		if _, ok := seen[dir]; ok {
			return
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() || !isSafeDir(info) {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, dir := range defaultSafeDirs {
		add(dir)
	}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		add(dir)
	}
	return dirs
}

// World- or group-writable directories are not trusted for lookup.
func isSafeDir(info os.FileInfo) bool {
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o022 == 0
}

func findExecutable(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("executable not found: %s", name)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("executable not found in safe PATH: %s", name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func replaceEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			continue
		}
		out = append(out, entry)
	}
	return append(out, prefix+value)
}
