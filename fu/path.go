package fu

import (
	"path/filepath"

	"go-ml.dev/pkg/iokit"
)

// ModelPath resolves a model file name to an absolute location,
// relative names go to the shared models cache directory.
func ModelPath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "Models", s))
}
