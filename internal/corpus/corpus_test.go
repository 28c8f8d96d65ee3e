// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/corpus-learn/pkg/types"
)

func sgmlDoc(split, title, body string, topics ...string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<REUTERS LEWISSPLIT=%q NEWID=\"1\">\n<TOPICS>", split)
	for _, tp := range topics {
		fmt.Fprintf(&buf, "<D>%s</D>", tp)
	}
	fmt.Fprintf(&buf, "</TOPICS>\n<TITLE>%s</TITLE>\n<BODY>%s</BODY></REUTERS>\n", title, body)
	return buf.String()
}

// writeCorpus creates a data directory holding the given .sgm files.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func openExisting(t *testing.T, dir string) *Corpus {
	t.Helper()
	cfg := types.CorpusConfig{DataDir: dir}
	c, err := Open(context.Background(), nil, cfg, io.Discard)
	require.NoError(t, err)
	return c
}

func collect(t *testing.T, c *Corpus, split string) []types.Document {
	t.Helper()
	var docs []types.Document
	for doc, err := range c.Documents(split) {
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return docs
}

func TestDocumentsFiltersBySplit(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"reut2-000.sgm": sgmlDoc("TRAIN", "T1", "body one", "acq") +
			sgmlDoc("TEST", "T2", "body two", "grain") +
			sgmlDoc("NOT-USED", "T3", "body three", "acq"),
	})
	c := openExisting(t, dir)

	train := collect(t, c, "TRAIN")
	test := collect(t, c, "TEST")

	require.Len(t, train, 1)
	require.Len(t, test, 1)
	assert.Equal(t, "T1", train[0].Title)
	assert.Equal(t, "T2", test[0].Title)
}

func TestDocumentsSplitsDisjointUnionComplete(t *testing.T) {
	content := sgmlDoc("TRAIN", "A", "a", "acq") +
		sgmlDoc("TEST", "B", "b", "grain") +
		sgmlDoc("TRAIN", "C", "c") +
		sgmlDoc("TEST", "D", "d", "acq", "grain")
	dir := writeCorpus(t, map[string]string{"reut2-000.sgm": content})
	c := openExisting(t, dir)

	train := collect(t, c, "TRAIN")
	test := collect(t, c, "TEST")

	seen := map[string]string{}
	for _, d := range train {
		seen[d.Title] = "TRAIN"
	}
	for _, d := range test {
		_, dup := seen[d.Title]
		assert.False(t, dup, "document %q in both splits", d.Title)
		seen[d.Title] = "TEST"
	}
	assert.Len(t, seen, 4, "union must cover every labeled document")
}

func TestDocumentsCrossFileOrderDeterministic(t *testing.T) {
	files := map[string]string{
		"reut2-001.sgm": sgmlDoc("TRAIN", "SECOND", "b", "x"),
		"reut2-000.sgm": sgmlDoc("TRAIN", "FIRST", "a", "x"),
		"reut2-002.sgm": sgmlDoc("TRAIN", "THIRD", "c", "x"),
	}
	dir := writeCorpus(t, files)
	c := openExisting(t, dir)

	docs := collect(t, c, "TRAIN")
	require.Len(t, docs, 3)
	assert.Equal(t, "FIRST", docs[0].Title)
	assert.Equal(t, "SECOND", docs[1].Title)
	assert.Equal(t, "THIRD", docs[2].Title)
}

func TestDocumentsFreshParserPerFile(t *testing.T) {
	// The first file ends mid-document. The truncated document is never
	// emitted and nothing from it may bleed into the next file's output.
	files := map[string]string{
		"reut2-000.sgm": `<REUTERS LEWISSPLIT="TRAIN"><TOPICS><D>stale</D></TOPICS><TITLE>TRUNCATED`,
		"reut2-001.sgm": sgmlDoc("TRAIN", "CLEAN", "clean body", "acq"),
	}
	dir := writeCorpus(t, files)
	c := openExisting(t, dir)

	docs := collect(t, c, "TRAIN")
	require.Len(t, docs, 1)
	assert.Equal(t, "CLEAN", docs[0].Title)
	assert.Equal(t, []string{"acq"}, docs[0].Topics)
}

func TestDocumentsEarlyTermination(t *testing.T) {
	content := sgmlDoc("TRAIN", "A", "a", "x") + sgmlDoc("TRAIN", "B", "b", "x")
	dir := writeCorpus(t, map[string]string{"reut2-000.sgm": content})
	c := openExisting(t, dir)

	count := 0
	for _, err := range c.Documents("TRAIN") {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)
}

// corpusArchive builds an in-memory .tar.gz holding the given files.
func corpusArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestOpenFetchesAndUnpacksOnce(t *testing.T) {
	archive := corpusArchive(t, map[string]string{
		"reut2-000.sgm": sgmlDoc("TRAIN", "FETCHED", "body", "acq"),
	})

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(archive)
	}))
	defer ts.Close()

	dataDir := filepath.Join(t.TempDir(), "reuters")
	cfg := types.CorpusConfig{DataDir: dataDir, ArchiveURL: ts.URL}

	c, err := Open(context.Background(), ts.Client(), cfg, io.Discard)
	require.NoError(t, err)

	docs := collect(t, c, "TRAIN")
	require.Len(t, docs, 1)
	assert.Equal(t, "FETCHED", docs[0].Title)

	// Second Open must not download again.
	_, err = Open(context.Background(), ts.Client(), cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenFetchFailureIsFatalAndClean(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	dataDir := filepath.Join(t.TempDir(), "reuters")
	cfg := types.CorpusConfig{DataDir: dataDir, ArchiveURL: ts.URL}

	_, err := Open(context.Background(), ts.Client(), cfg, io.Discard)
	require.Error(t, err)

	// A failed fetch leaves no partial data dir behind, so the next call
	// starts from scratch.
	_, statErr := os.Stat(dataDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	archive := corpusArchive(t, map[string]string{
		"../evil.sgm": "x",
	})
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bad.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, archive, 0o644))

	err := unpack(archivePath, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}
