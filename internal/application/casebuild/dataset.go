package casebuild

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/turtacn/LegalLens/internal/infrastructure/storage/minio"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const maxJudgmentLine = 16 << 20

// ObjectWriter is the part of minio.Repository used for dataset upload.
type ObjectWriter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*minio.UploadResult, error)
}

// ReadJudgments decodes one JSON JudgmentInput per line. Blank lines are
// skipped; a malformed line fails with its line number.
func ReadJudgments(r io.Reader) ([]legal.JudgmentInput, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxJudgmentLine)

	var out []legal.JudgmentInput
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var in legal.JudgmentInput
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			return nil, errors.Wrapf(err, errors.ErrCodeDatasetReadFailed, "judgment line %d is not valid JSON", line)
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetReadFailed, "failed to read judgments")
	}
	return out, nil
}

// EncodeDataset renders ds as indented JSON.
func EncodeDataset(ds *legal.Dataset) ([]byte, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetWriteFailed, "failed to encode dataset")
	}
	return data, nil
}

// WriteDatasetFile writes ds to name, creating parent directories.
func WriteDatasetFile(name string, ds *legal.Dataset) error {
	data, err := EncodeDataset(ds)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(name); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, errors.ErrCodeDatasetWriteFailed, "cannot create %s", dir)
		}
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrCodeDatasetWriteFailed, "cannot write %s", name)
	}
	return nil
}

// DatasetKey is the object key of a dataset under prefix.
func DatasetKey(prefix string, ds *legal.Dataset) string {
	return path.Join(prefix, "legal_cases_"+ds.Metadata.RunID+".json")
}

// UploadDataset stores ds under prefix and returns the object key.
func UploadDataset(ctx context.Context, w ObjectWriter, prefix string, ds *legal.Dataset) (string, error) {
	data, err := EncodeDataset(ds)
	if err != nil {
		return "", err
	}
	key := DatasetKey(prefix, ds)
	if _, err := w.Put(ctx, key, data, "application/json"); err != nil {
		return "", errors.Wrapf(err, errors.ErrCodeDatasetWriteFailed, "upload of %s failed", key)
	}
	return key, nil
}
