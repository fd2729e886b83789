package pipeline

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foliogate/internal/domain"
)

// MaxFiles is the default number of files one registration accepts.
const MaxFiles = 10

// RawFile is an upload before it has been read into memory.
type RawFile struct {
	Name         string
	ContentType  string
	Size         int64
	LastModified time.Time
	Open         func() (io.ReadCloser, error)
}

// Register converts files to their serializable form and replaces the
// pipeline contents with one pending entry per file, in input order.
// Either every file is registered or none is.
func (s *State) Register(files []RawFile) error {
	if len(files) == 0 {
		return domain.ErrNoFiles
	}
	if len(files) > s.maxFiles {
		return fmt.Errorf("%w: you can upload at most %d files, got %d", domain.ErrTooManyFiles, s.maxFiles, len(files))
	}

	entries := make([]domain.FileProcessingState, 0, len(files))
	for i := range files {
		uploaded, err := EncodeFile(files[i])
		if err != nil {
			return err
		}
		entries = append(entries, domain.FileProcessingState{
			File:     uploaded,
			Status:   domain.FileStatusPending,
			Progress: 0,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.files = entries
	s.errs = make(ErrorMap)
	s.nav = &OnceGuard{}
	s.importing = make(map[int]bool)
	return nil
}

// EncodeFile reads a raw file into an UploadedFile holding a base64 data URL.
func EncodeFile(f RawFile) (domain.UploadedFile, error) {
	if f.Open == nil {
		return domain.UploadedFile{}, fmt.Errorf("%w: %s has no content", domain.ErrFileUnreadable, f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("%w: opening %s: %v", domain.ErrFileUnreadable, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("%w: reading %s: %v", domain.ErrFileUnreadable, f.Name, err)
	}

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	modTime := f.LastModified
	if modTime.IsZero() {
		modTime = time.Now()
	}

	return domain.UploadedFile{
		Name:         f.Name,
		Size:         int64(len(data)),
		ContentType:  contentType,
		LastModified: modTime.UTC(),
		DataURL:      "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return contentType, data, nil
}
