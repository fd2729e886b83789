package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"foliogate/internal/config"
	"foliogate/internal/pipeline"
	"foliogate/internal/upstream"
)

var errNoToken = errors.New("an access token is required: pass -token or set FOLIOGATE_TOKEN")

// session is the shared setup of commands that talk to the portfolio API.
type session struct {
	cfg   *config.Config
	api   *upstream.Client
	token string
}

func openSession() (*session, error) {
	if *token == "" {
		return nil, errNoToken
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &session{cfg: cfg, api: upstream.NewClient(&cfg.Upstream), token: *token}, nil
}

// rawFiles describes local files for registration. Files are opened lazily
// by the pipeline; the content type is sniffed from the first bytes.
func rawFiles(paths []string) ([]pipeline.RawFile, error) {
	files := make([]pipeline.RawFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}
		contentType, err := sniffContentType(p)
		if err != nil {
			return nil, err
		}
		name := p
		files = append(files, pipeline.RawFile{
			Name:         filepath.Base(p),
			ContentType:  contentType,
			Size:         info.Size(),
			LastModified: info.ModTime(),
			Open:         func() (io.ReadCloser, error) { return os.Open(name) },
		})
	}
	return files, nil
}

func sniffContentType(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	ct := http.DetectContentType(head[:n])
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct, nil
}

// parseFilters turns key=value arguments into history query parameters.
func parseFilters(args []string) (url.Values, error) {
	q := url.Values{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("filter %q must look like key=value", a)
		}
		q.Add(k, v)
	}
	return q, nil
}
