// Package corpus loads the statute corpus and the historical case dataset
// and keeps the current snapshot for the search services.
package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/LegalLens/internal/infrastructure/storage/minio"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const loadConcurrency = 8

// FileError records a statute file that could not be parsed.
type FileError struct {
	Name string
	Err  error
}

// LoadResult is the outcome of loading a set of statute files. Files that
// fail to parse are reported in Failed and otherwise skipped.
type LoadResult struct {
	Entries []legal.StatuteCorpusEntry
	Files   int
	Failed  []FileError
}

// ActFromName derives the act name from a file name: "ipc.json" → "IPC".
func ActFromName(name string) string {
	base := path.Base(filepath.ToSlash(name))
	return strings.ToUpper(strings.TrimSuffix(base, path.Ext(base)))
}

// ParseStatutes decodes a JSON array of statute objects. Keys are matched
// once here: "Section" or "section" (string or number), "section_title" or
// "title", "section_desc" or "description". Objects with no section, title
// and description are dropped.
func ParseStatutes(act string, data []byte) ([]legal.StatuteCorpusEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var items []map[string]interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusInvalidEntry, "statute file is not a JSON array of objects").WithDetail(act)
	}
	out := make([]legal.StatuteCorpusEntry, 0, len(items))
	for _, item := range items {
		e := legal.StatuteCorpusEntry{
			Act:           act,
			SectionNumber: firstText(item, "Section", "section"),
			Title:         firstText(item, "section_title", "title"),
			Description:   firstText(item, "section_desc", "description"),
		}
		if e.IsEmpty() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func firstText(item map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		case json.Number:
			return t.String()
		case bool:
			continue
		}
	}
	return ""
}

// LoadDir reads every *.json file in dir. Files load concurrently; entries
// are ordered by file name, then by position within the file.
func LoadDir(ctx context.Context, dir string) (*LoadResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "laws directory not readable").WithDetail(dir)
	}
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "bad laws directory pattern").WithDetail(dir)
	}
	sort.Strings(names)
	return loadAll(ctx, names, func(_ context.Context, name string) ([]byte, error) {
		return os.ReadFile(name)
	})
}

// ObjectStore is the read side of minio.Repository.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]minio.ObjectInfo, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// LoadObjects reads every .json object under prefix from store.
func LoadObjects(ctx context.Context, store ObjectStore, prefix string) (*LoadResult, error) {
	refs, err := store.List(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "failed to list statute objects").WithDetail(prefix)
	}
	var names []string
	for _, r := range refs {
		if strings.EqualFold(path.Ext(r.Key), ".json") {
			names = append(names, r.Key)
		}
	}
	sort.Strings(names)
	return loadAll(ctx, names, store.Get)
}

func loadAll(ctx context.Context, names []string, read func(context.Context, string) ([]byte, error)) (*LoadResult, error) {
	parsed := make([][]legal.StatuteCorpusEntry, len(names))
	failed := make([]error, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := read(gctx, name)
			if err != nil {
				failed[i] = err
				return nil
			}
			parsed[i], failed[i] = ParseStatutes(ActFromName(name), data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "statute load cancelled")
	}

	res := &LoadResult{Files: len(names)}
	for i, name := range names {
		if failed[i] != nil {
			res.Failed = append(res.Failed, FileError{Name: name, Err: failed[i]})
			continue
		}
		res.Entries = append(res.Entries, parsed[i]...)
	}
	return res, nil
}

// LoadCases decodes a dataset file ({"_metadata": ..., "cases": [...]}).
func LoadCases(r io.Reader) (*legal.Dataset, error) {
	var ds legal.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetReadFailed, "failed to decode case dataset")
	}
	return &ds, nil
}

// LoadCasesFile is LoadCases over a file path.
func LoadCasesFile(name string) (*legal.Dataset, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetReadFailed, "failed to open case dataset").WithDetail(name)
	}
	defer f.Close()
	return LoadCases(f)
}
