package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed *.yaml
var PrefabsFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string][]byte)
)

// Load returns a prefab file, preferring a copy under ./prefabs on disk so
// edits can be picked up without rebuilding. Results are cached until
// Invalidate is called for the file.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)

	cacheMu.Lock()
	data, ok := cache[clean]
	cacheMu.Unlock()
	if ok {
		return data, nil
	}

	data, err := os.ReadFile(diskPrefabPath(clean))
	if err != nil {
		data, err = PrefabsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}

	cacheMu.Lock()
	cache[clean] = data
	cacheMu.Unlock()
	return data, nil
}

// Invalidate drops the cached copy of a prefab file. It accepts the paths
// reported by the Watcher.
func Invalidate(name string) {
	clean := filepath.Base(cleanPrefabPath(name))
	cacheMu.Lock()
	delete(cache, clean)
	cacheMu.Unlock()
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
