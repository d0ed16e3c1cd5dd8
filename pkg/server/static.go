package server

import (
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"
)

// Static serves files from fsys under the given URL prefix, typically the
// fingerprinted asset directory the manifest points into.
//
//	srv.Static("/public/", os.DirFS("dist"))
func (s *Server) Static(prefix string, fsys fs.FS) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	s.router.Get(prefix+"*", func(w http.ResponseWriter, r *http.Request) {
		serveStaticFile(w, r, fsys, prefix)
	})
	s.router.Head(prefix+"*", func(w http.ResponseWriter, r *http.Request) {
		serveStaticFile(w, r, fsys, prefix)
	})
}

func serveStaticFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, prefix string) {
	rel, ok := staticRelPath(r.URL.Path, prefix)
	if !ok {
		http.NotFound(w, r)
		return
	}

	f, err := fsys.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	// Fingerprinted names never change content, so they cache forever.
	if fingerprinted(rel) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}

	http.ServeFileFS(w, r, fsys, rel)
}

// staticRelPath returns a sanitized fsys-relative path for a static file
// request. It rejects traversal and absolute-path tricks so static serving
// cannot escape the configured directory.
func staticRelPath(urlPath, prefix string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, prefix)
	if rel == "" || rel == urlPath {
		return "", false
	}

	// NUL can arrive via %00.
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}

	if strings.Contains(rel, "\\") {
		return "", false
	}

	// A leading "/" after prefix stripping is an absolute-path attempt
	// ("/public//etc/passwd" => "/etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning; cleaning them away would change
	// the meaning of the request path.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}

	return clean, true
}

// fingerprinted reports whether the filename carries a content hash
// segment, e.g. "loom.a1b2c3d4.min.js".
func fingerprinted(name string) bool {
	base := path.Base(name)
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return false
	}
	for _, part := range parts[1 : len(parts)-1] {
		if len(part) >= 8 && isHex(part) {
			return true
		}
	}
	return false
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
