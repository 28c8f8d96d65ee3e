// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/corpus-learn/internal/httputil"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

// downloadURL is the canonical archive location at the UCI ML repository.
const downloadURL = "http://archive.ics.uci.edu/ml/machine-learning-databases/reuters21578-mld/reuters21578.tar.gz"

const archiveName = "reuters21578.tar.gz"

// ensureData downloads and unpacks the corpus archive into cfg.DataDir if
// the directory does not yet exist. Subsequent calls with an existing
// directory are no-ops. A fetch or unpack failure removes the partial
// directory so the next call starts clean.
func ensureData(ctx context.Context, client *http.Client, cfg types.CorpusConfig, w io.Writer) error {
	if _, err := os.Stat(cfg.DataDir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat data dir %s: %w", cfg.DataDir, err)
	}

	url := cfg.ArchiveURL
	if url == "" {
		url = downloadURL
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", cfg.DataDir, err)
	}

	archivePath := filepath.Join(cfg.DataDir, archiveName)
	fmt.Fprintf(w, "downloading corpus (once and for all) into %s\n", cfg.DataDir)
	if err := download(ctx, client, url, archivePath, cfg); err != nil {
		os.RemoveAll(cfg.DataDir)
		return fmt.Errorf("downloading corpus: %w", err)
	}

	fmt.Fprintf(w, "unpacking %s\n", archiveName)
	if err := unpack(archivePath, cfg.DataDir); err != nil {
		os.RemoveAll(cfg.DataDir)
		return fmt.Errorf("unpacking corpus: %w", err)
	}
	return nil
}

// download fetches url to destPath using a temporary file renamed on
// success, so an interrupted download never leaves a partial archive
// behind. Transient HTTP failures are retried by httputil.
func download(ctx context.Context, client *http.Client, url, destPath string, cfg types.CorpusConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// unpack extracts a .tar.gz archive into destDir, streaming entries
// without buffering the archive. Entries that would escape destDir are
// rejected.
func unpack(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip header: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive entry: %w", err)
		}

		name := filepath.Clean(hdr.Name)
		if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %q", hdr.Name)
		}
		dest := filepath.Join(destDir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dest, err)
			}
		case tar.TypeReg:
			if err := writeEntry(dest, tr); err != nil {
				return err
			}
		default:
			// Symlinks and other special entries are not part of this
			// corpus; skip them.
		}
	}
}

// writeEntry copies one regular archive entry to dest.
func writeEntry(dest string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	_, copyErr := io.Copy(out, r)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", dest, closeErr)
	}
	return nil
}
