package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/config"
	pkgerrors "github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type stubSource struct {
	statutes *LoadResult
	cases    *legal.Dataset
	err      error
	caseErr  error
}

func (s *stubSource) LoadStatutes(context.Context) (*LoadResult, error) { return s.statutes, s.err }
func (s *stubSource) LoadCases(context.Context) (*legal.Dataset, error) { return s.cases, s.caseErr }
func (s *stubSource) String() string                                    { return "stub" }

func sampleStatutes() []legal.StatuteCorpusEntry {
	return []legal.StatuteCorpusEntry{
		{Act: "IPC", SectionNumber: "302", Title: "Punishment for murder"},
		{Act: "MVA", SectionNumber: "181", Title: "Driving without licence"},
	}
}

func sampleCases() []legal.CaseRecord {
	return []legal.CaseRecord{
		{CaseNumber: "A", CrimeDetails: "The accused stabbed the victim.", Sections: []legal.StatuteSectionReference{
			{SectionNumber: "302", OffenseName: "Murder"}, {SectionNumber: "34", OffenseName: "Common Intention"},
		}},
		{CaseNumber: "B", CrimeDetails: ""},
		{CaseNumber: "A", CrimeDetails: "duplicate number"},
	}
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(&stubSource{}, nil, nil)
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCorpusNotLoaded))
	assert.False(t, s.Loaded())
}

func TestStore_Reload(t *testing.T) {
	src := &stubSource{
		statutes: &LoadResult{Entries: sampleStatutes(), Files: 2},
		cases:    &legal.Dataset{Cases: sampleCases()},
	}
	s := NewStore(src, nil, nil)

	snap, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Loaded())
	assert.Equal(t, 2, snap.Statutes.Len())
	assert.Equal(t, 1, snap.Precedents.Len(), "empty details and duplicate numbers are skipped")
	assert.Equal(t, "The accused stabbed the victim.", snap.Cases["A"].CrimeDetails)
	assert.Len(t, snap.Version, 16)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, snap, cur)
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	src := &stubSource{statutes: &LoadResult{Entries: sampleStatutes()}}
	s := NewStore(src, nil, nil)
	first, err := s.Reload(context.Background())
	require.NoError(t, err)

	src.err = errors.New("disk gone")
	_, err = s.Reload(context.Background())
	assert.Error(t, err)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, cur)
}

func TestStore_CaseErrorStillLoadsStatutes(t *testing.T) {
	src := &stubSource{statutes: &LoadResult{Entries: sampleStatutes()}, caseErr: errors.New("bad dataset")}
	snap, err := NewStore(src, nil, nil).Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Statutes.Len())
	assert.Zero(t, snap.Precedents.Len())
}

func TestSnapshot_VersionIsContentHash(t *testing.T) {
	a := NewSnapshot(sampleStatutes(), sampleCases())
	b := NewSnapshot(sampleStatutes(), sampleCases())
	assert.Equal(t, a.Version, b.Version)

	changed := sampleStatutes()
	changed[0].Title = "Murder"
	assert.NotEqual(t, a.Version, NewSnapshot(changed, sampleCases()).Version)
	assert.NotEqual(t, a.Version, NewSnapshot(sampleStatutes(), nil).Version)
}

func TestCaseEntry(t *testing.T) {
	e := CaseEntry(sampleCases()[0])
	assert.Equal(t, legal.StatuteCorpusEntry{
		SectionNumber: "A",
		Title:         "Murder, Common Intention",
		Description:   "The accused stabbed the victim.",
	}, e)
}

func TestNewSource(t *testing.T) {
	cfg := config.NewDefaultConfig()

	src, err := NewSource(cfg.Corpus, cfg.MinIO, nil)
	require.NoError(t, err)
	assert.IsType(t, DirSource{}, src)

	cfg.Corpus.Source = "minio"
	_, err = NewSource(cfg.Corpus, cfg.MinIO, nil)
	assert.Error(t, err)

	src, err = NewSource(cfg.Corpus, cfg.MinIO, memObjects{})
	require.NoError(t, err)
	assert.Equal(t, "minio:"+cfg.MinIO.CorpusPrefix, src.String())

	cfg.Corpus.Source = "ftp"
	_, err = NewSource(cfg.Corpus, cfg.MinIO, nil)
	assert.Error(t, err)
}

func TestDirSource_LoadsCasesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ipc.json", ipcJSON)
	casesPath := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(casesPath, []byte(`{"cases":[{"case_number":"X","crime_details":"theft of a bicycle"}]}`), 0o644))

	snap, err := NewStore(DirSource{LawsDir: dir, CasesFile: casesPath}, nil, nil).Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Statutes.Len())
	assert.Equal(t, 1, snap.Precedents.Len())
}
