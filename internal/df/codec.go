package df

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// SentinelKey is the reserved first record of a serialized frequency table,
// carrying the corpus document count. Callers of Load computing IDF
// statistics must special-case it.
const SentinelKey = "--NB_DOC--"

// DefaultDelimiter separates keys from counts in serialized tables.
const DefaultDelimiter = "\t"

// GzipSuffix on a table path selects gzip compression on both read and write.
const GzipSuffix = ".gz"

// Write serializes the table to path, sentinel record first, one
// key<delimiter>count record per entry, sorted by key. A path ending in
// GzipSuffix is written gzip-compressed. The file is written to a temp path
// and renamed on success.
func Write(path string, table Table, documentCount int, delimiter string) error {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating frequency file %s: %w", tmpPath, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, GzipSuffix) {
		gz = gzip.NewWriter(f)
		w = gz
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%s%d\n", SentinelKey, delimiter, documentCount); err != nil {
		return fmt.Errorf("writing document count: %w", err)
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(bw, "%s%s%d\n", key, delimiter, table[key]); err != nil {
			return fmt.Errorf("writing frequency record %q: %w", key, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing frequency file: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("closing gzip stream: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing frequency file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Load reads a serialized frequency table into a plain mapping. The sentinel
// record is NOT stripped: it appears as a regular entry whose value is the
// document count, preserving the historical plain-load contract. New code
// should prefer LoadStats.
func Load(path string, delimiter string) (Table, error) {
	table, _, err := load(path, delimiter, false)
	return table, err
}

// LoadStats reads a serialized frequency table, strips the sentinel record,
// and returns the document count separately. A missing sentinel yields a
// document count of zero.
func LoadStats(path string, delimiter string) (Table, int, error) {
	return load(path, delimiter, true)
}

func load(path string, delimiter string, stripSentinel bool) (Table, int, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, pkgerrors.InFile(pkgerrors.ErrMalformedFrequencyFile, path, 0, "opening: %v", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, GzipSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, pkgerrors.InFile(pkgerrors.ErrMalformedFrequencyFile, path, 0, "opening gzip stream: %v", err)
		}
		defer gz.Close()
		r = gz
	}

	table := make(Table)
	documentCount := 0
	record := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		record++
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, countField, ok := strings.Cut(line, delimiter)
		if !ok {
			return nil, 0, pkgerrors.InFile(pkgerrors.ErrMalformedFrequencyFile, path, record,
				"missing delimiter %q", delimiter)
		}
		count, err := strconv.Atoi(countField)
		if err != nil {
			return nil, 0, pkgerrors.InFile(pkgerrors.ErrMalformedFrequencyFile, path, record,
				"non-integer count %q", countField)
		}
		if key == SentinelKey {
			documentCount = count
			if stripSentinel {
				continue
			}
		}
		table[key] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, pkgerrors.InFile(pkgerrors.ErrMalformedFrequencyFile, path, record, "reading: %v", err)
	}
	return table, documentCount, nil
}
