package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskRoot is checked before the embedded copies so balance edits can be
// picked up without a rebuild. Empty disables the override.
var DiskRoot = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns a balance file, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a death script, preferring the on-disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	if DiskRoot == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readDisk(clean string) ([]byte, bool) {
	if DiskRoot == "" || clean == "" {
		return nil, false
	}
	data, err := os.ReadFile(diskPrefabPath(clean))
	if err != nil {
		return nil, false
	}
	return data, true
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

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(clean))
}
