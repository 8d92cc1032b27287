// Package gallery serves an index of the image files under public/img so the
// frontend can render the photo carousel without a hardcoded list.
package gallery

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vitrina/pkg/logger"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var firstNumber = regexp.MustCompile(`\d+`)

type Gallery struct {
	Dir string
}

func New(dir string) *Gallery {
	return &Gallery{Dir: dir}
}

// List returns the gallery file names in natural order: img2 before img10,
// names without a number last, ties broken case-insensitively. A missing
// directory yields an empty list, not an error.
func (g *Gallery) List() []string {
	entries, err := os.ReadDir(g.Dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Sugar.Warnf("Failed to read image directory %s: %v", g.Dir, err)
		}
		return []string{}
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		low := strings.ToLower(e.Name())
		if strings.HasPrefix(low, "img") && allowedExt[filepath.Ext(low)] {
			files = append(files, e.Name())
		}
	}

	sort.Slice(files, func(i, j int) bool {
		ni, nj := naturalKey(files[i]), naturalKey(files[j])
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files
}

func naturalKey(name string) int {
	m := firstNumber.FindString(name)
	if m == "" {
		return int(^uint(0) >> 1) // no number sorts last
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

func (g *Gallery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g.List())
}
