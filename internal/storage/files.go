package storage

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ListFiles returns every file under dir, depth first.  Entries are visited
// in name order and each subdirectory's files are inlined where the
// subdirectory appears.  Symlinks are followed.
func ListFiles(dir string) ([]string, error) {
	var files []string
	if err := listFiles(dir, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func listFiles(dir string, acc *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		info, err := os.Stat(full)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := listFiles(full, acc); err != nil {
				return err
			}
			continue
		}
		*acc = append(*acc, full)
	}
	return nil
}

// FolderKey joins prefix and a path relative to the uploaded folder into an
// object key that always uses forward slashes.
func FolderKey(prefix, rel string) string {
	key := filepath.ToSlash(filepath.Join(prefix, rel))
	return strings.ReplaceAll(key, `\`, "/")
}

// ContentType guesses the MIME type from the file extension.
func ContentType(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}
