package imagegen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// outputPaths resolves one destination path per image entry. A single entry
// uses the requested path verbatim; multiple entries derive siblings by
// inserting a 1-based index before the extension, preserving directory and
// extension: /tmp/x/img.png -> /tmp/x/img_1.png, /tmp/x/img_2.png, ...
func outputPaths(path string, n int) []string {
	if n <= 1 {
		return []string{path}
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d%s", stem, i+1, ext)
	}
	return out
}
