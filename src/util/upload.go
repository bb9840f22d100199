package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Extension allow-list for document uploads. Matching is by extension only;
// content is stored and served back unchanged.
var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true,
	"jpg": true, "jpeg": true, "png": true,
	"xlsx": true, "csv": true,
}

func AllowedFile(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename strips any path components and reduces the name to a safe
// character set so a client-supplied filename can never escape the upload
// directory.
func SecureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.', c == '-', c == '_':
			b.WriteRune(c)
		case c == ' ':
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}
	return out
}

// SaveUpload writes an uploaded file into dir and returns the stored
// filename. The caller has already checked AllowedFile.
func SaveUpload(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	safe := SecureFilename(header.Filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(dir, safe))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return safe, nil
}
