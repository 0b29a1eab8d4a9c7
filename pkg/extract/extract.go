package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned for file extensions outside the
// ingestion allow-list. Callers must reject the file before touching any
// store.
var ErrUnsupportedType = errors.New("extract: unsupported file type")

var supportedExtensions = map[string]bool{
	".docx": true,
	".pdf":  true,
	".txt":  true,
}

// Supported reports whether the file name has an ingestible extension.
func Supported(fileName string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// Text extracts plain text from a file's raw bytes based on its
// extension. Unsupported extensions return ErrUnsupportedType.
func Text(fileName string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		text, err := parseDocx(content)
		if err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", fileName, err)
		}
		return text, nil
	case ".pdf":
		text, err := parsePDF(content)
		if err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", fileName, err)
		}
		return text, nil
	case ".txt":
		return strings.TrimSpace(string(content)), nil
	default:
		return "", fmt.Errorf("%s: %w", fileName, ErrUnsupportedType)
	}
}
