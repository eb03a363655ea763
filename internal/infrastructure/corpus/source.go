package corpus

import (
	"bytes"
	"context"

	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

// DirSource reads statutes from a directory and cases from a local file.
type DirSource struct {
	LawsDir   string
	CasesFile string
}

func (d DirSource) LoadStatutes(ctx context.Context) (*LoadResult, error) {
	return LoadDir(ctx, d.LawsDir)
}

func (d DirSource) LoadCases(context.Context) (*legal.Dataset, error) {
	if d.CasesFile == "" {
		return nil, nil
	}
	return LoadCasesFile(d.CasesFile)
}

func (d DirSource) String() string { return "dir:" + d.LawsDir }

// ObjectSource reads statutes from objects under Prefix. Cases come from
// CasesKey in the same store when set, else from the local CasesFile.
type ObjectSource struct {
	Store     ObjectStore
	Prefix    string
	CasesKey  string
	CasesFile string
}

func (o ObjectSource) LoadStatutes(ctx context.Context) (*LoadResult, error) {
	return LoadObjects(ctx, o.Store, o.Prefix)
}

func (o ObjectSource) LoadCases(ctx context.Context) (*legal.Dataset, error) {
	switch {
	case o.CasesKey != "":
		data, err := o.Store.Get(ctx, o.CasesKey)
		if err != nil {
			return nil, err
		}
		return LoadCases(bytes.NewReader(data))
	case o.CasesFile != "":
		return LoadCasesFile(o.CasesFile)
	default:
		return nil, nil
	}
}

func (o ObjectSource) String() string { return "minio:" + o.Prefix }

// NewSource picks the source named by cfg.Source. store is required for the
// minio source and ignored otherwise.
func NewSource(cfg config.CorpusConfig, minioCfg config.MinIOConfig, store ObjectStore) (Source, error) {
	switch cfg.Source {
	case "", "dir":
		return DirSource{LawsDir: cfg.LawsDir, CasesFile: cfg.CasesFile}, nil
	case "minio":
		if store == nil {
			return nil, errors.New(errors.ErrCodeCorpusLoadFailed, "minio corpus source needs an object store")
		}
		return ObjectSource{Store: store, Prefix: minioCfg.CorpusPrefix, CasesFile: cfg.CasesFile}, nil
	default:
		return nil, errors.Newf(errors.ErrCodeValidation, "unknown corpus source %q", cfg.Source)
	}
}
