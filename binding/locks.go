package binding

import (
	"path/filepath"
	"strings"
	"sync"
)

// heldPaths tracks database files opened by engines that allow a single
// handle per file, keyed by engine and absolute path.
var heldPaths = struct {
	sync.Mutex
	keys map[string]struct{}
}{keys: map[string]struct{}{}}

// isMemoryPath reports whether path names an in-memory database, which is
// private to its handle and never contended.
func isMemoryPath(path string) bool {
	return path == "" || strings.HasPrefix(path, ":memory:")
}

// pathKey returns the lock key for a file database, or false for in-memory
// databases.
func pathKey(engine string, path string) (string, bool) {
	if isMemoryPath(path) {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return engine + ":" + abs, true
}

// acquirePath marks key as held. It returns false if it already was.
func acquirePath(key string) bool {
	heldPaths.Lock()
	defer heldPaths.Unlock()

	if _, held := heldPaths.keys[key]; held {
		return false
	}
	heldPaths.keys[key] = struct{}{}
	return true
}

func releasePath(key string) {
	heldPaths.Lock()
	defer heldPaths.Unlock()
	delete(heldPaths.keys, key)
}
