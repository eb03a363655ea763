package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/infrastructure/storage/minio"
	pkgerrors "github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

const ipcJSON = `[
  {"chapter": 16, "Section": 302, "section_title": "Punishment for murder", "section_desc": "Whoever commits murder shall be punished with death."},
  {"section": "379", "title": "Punishment for theft", "description": "Whoever commits theft shall be punished."},
  {"Section": "", "section_title": "", "section_desc": ""},
  {"Section": "34", "section_title": "Acts done by several persons in furtherance of common intention"}
]`

const mvaJSON = `[{"section": 181, "title": "Driving vehicles in contravention of section 3 or section 4"}]`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestActFromName(t *testing.T) {
	assert.Equal(t, "IPC", ActFromName("ipc.json"))
	assert.Equal(t, "MVA", ActFromName("/data/laws_json/mva.json"))
	assert.Equal(t, "CRPC", ActFromName("laws/CrPC.JSON"))
}

func TestParseStatutes_NormalisesKeys(t *testing.T) {
	entries, err := ParseStatutes("IPC", []byte(ipcJSON))
	require.NoError(t, err)
	require.Len(t, entries, 3, "the all-empty object is dropped")

	assert.Equal(t, legal.StatuteCorpusEntry{
		Act:           "IPC",
		SectionNumber: "302",
		Title:         "Punishment for murder",
		Description:   "Whoever commits murder shall be punished with death.",
	}, entries[0])
	assert.Equal(t, "379", entries[1].SectionNumber)
	assert.Equal(t, "Punishment for theft", entries[1].Title)
	assert.Equal(t, "Whoever commits theft shall be punished.", entries[1].Description)
	assert.Equal(t, "34", entries[2].SectionNumber)
	assert.Empty(t, entries[2].Description)
}

func TestParseStatutes_Invalid(t *testing.T) {
	_, err := ParseStatutes("IPC", []byte(`{"Section": 1}`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCorpusInvalidEntry))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mva.json", mvaJSON)
	writeFile(t, dir, "ipc.json", ipcJSON)
	writeFile(t, dir, "broken.json", `[{`)
	writeFile(t, dir, "notes.txt", "ignored")

	res, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "broken.json", filepath.Base(res.Failed[0].Name))

	require.Len(t, res.Entries, 4)
	var got []string
	for _, e := range res.Entries {
		got = append(got, e.Act+" "+e.SectionNumber)
	}
	assert.Equal(t, []string{"IPC 302", "IPC 379", "IPC 34", "MVA 181"}, got, "file name order, then file order")
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCorpusLoadFailed))
}

type memObjects map[string]string

func (m memObjects) List(_ context.Context, prefix string) ([]minio.ObjectInfo, error) {
	var out []minio.ObjectInfo
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, minio.ObjectInfo{Key: k})
		}
	}
	return out, nil
}

func (m memObjects) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, minio.ErrObjectNotFound
	}
	return []byte(v), nil
}

func TestLoadObjects(t *testing.T) {
	store := memObjects{
		"laws/mva.json":   mvaJSON,
		"laws/ipc.json":   ipcJSON,
		"laws/README.md":  "# laws",
		"datasets/x.json": "[]",
	}
	res, err := LoadObjects(context.Background(), store, "laws/")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	require.Len(t, res.Entries, 4)
	assert.Equal(t, "IPC", res.Entries[0].Act)
	assert.Equal(t, "MVA", res.Entries[3].Act)
}

type failingStore struct{}

func (failingStore) List(context.Context, string) ([]minio.ObjectInfo, error) {
	return nil, errors.New("bucket unreachable")
}
func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, nil }

func TestLoadObjects_ListFailure(t *testing.T) {
	_, err := LoadObjects(context.Background(), failingStore{}, "laws/")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeCorpusLoadFailed))
}

func TestLoadCases(t *testing.T) {
	body := `{"_metadata": {"total_cases": 1, "criminal_cases": 1},
	          "cases": [{"case_number": "SCIN01", "crime_details": "The accused stabbed the victim.", "category": "criminal",
	                     "ipc_section": [{"label": "Section 302 IPC", "section_number": "302", "offense_name": "Murder", "is_primary": true}],
	                     "verdict": {"outcome": "Convicted", "fine_amount": 5000}}]}`
	ds, err := LoadCases(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Metadata.TotalCases)
	require.Len(t, ds.Cases, 1)
	assert.Equal(t, "Murder", ds.Cases[0].Sections[0].OffenseName)
	assert.Equal(t, int64(5000), ds.Cases[0].Verdict.FineAmount)

	_, err = LoadCases(strings.NewReader("nope"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeDatasetReadFailed))

	_, err = LoadCasesFile(filepath.Join(t.TempDir(), "none.json"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeDatasetReadFailed))
}
