package validation

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/username/tradejournal/backend/src/logger"
)

// AllowedClientContentTypes are the MIME types browsers declare for broker CSV exports.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                  true,
	"application/csv":           true,
	"application/vnd.ms-excel":  true, // Excel's label for .csv on Windows
	"text/plain":                true,
	"text/tab-separated-values": true,
	"application/octet-stream":  true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": false, // .xlsx exports must be saved as CSV first
}

// allowedDetectedTypes are the sniffed types consistent with delimited text.
var allowedDetectedTypes = map[string]bool{
	"text/plain":               true,
	"text/csv":                 true,
	"application/csv":          true,
	"application/octet-stream": true,
}

// ValidateClientContentType checks the Content-Type header of one multipart file part.
func ValidateClientContentType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if !AllowedClientContentTypes[mediaType] {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		if mediaType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			return fmt.Errorf("excel workbooks are not supported, export the trade history as CSV")
		}
		return fmt.Errorf("client-declared file type '%s' is not allowed for CSV import", contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes sniffs the first 512 bytes and rewinds the file.
// It returns the detected content type and an error if it is not text-like.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// the mapper reads the same file afterwards
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", err)
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	if !allowedDetectedTypes[detectedContentType] {
		logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("detected file content type '%s' is not consistent with a CSV file", detectedContentType)
	}

	logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}
