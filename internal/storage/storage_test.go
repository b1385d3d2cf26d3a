package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

func sampleGeos() []model.Geo {
	return []model.Geo{
		{
			ID:          "us-new-york",
			Name:        "New York",
			DisplayName: "New York, USA",
			Region:      "North America",
			Events: []model.Event{
				{
					ID:                "1",
					Title:             "Q4 Town Hall",
					Description:       "Quarterly all-hands",
					StartDateTime:     time.Date(2025, 12, 15, 14, 0, 0, 0, time.UTC),
					Budget:            model.Budget{Total: 5000},
					Status:            model.StatusPublished,
					ExpectedAttendees: model.Int(150),
					Tags:              []string{"all-hands"},
					Location:          &model.Location{City: "New York", Venue: "HQ"},
				},
			},
		},
		{ID: "global", Name: "Global", DisplayName: "Global", Region: "Worldwide", Events: []model.Event{}},
	}
}

func TestEncodeEnvelope(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"geos":[]},"version":0}`, string(data))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		geos    int
	}{
		{name: "empty collection", data: `{"state":{"geos":[]},"version":0}`},
		{name: "missing events", data: `{"state":{"geos":[{"id":"global"}]},"version":0}`, geos: 1},
		{name: "no version", data: `{"state":{"geos":[]}}`},
		{name: "other version", data: `{"state":{"geos":[]},"version":1}`, wantErr: ErrUnsupportedVersion},
		{name: "malformed", data: `{"state":`, wantErr: ErrCorrupt},
		{name: "no state", data: `{"version":0}`, wantErr: ErrCorrupt},
		{name: "null geos", data: `{"state":{"geos":null},"version":0}`, wantErr: ErrCorrupt},
		{name: "bad timestamp", data: `{"state":{"geos":[{"id":"x","events":[{"id":"1","startDateTime":"soon"}]}]},"version":0}`, wantErr: ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geos, err := Decode([]byte(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, geos, tt.geos)
			for _, g := range geos {
				assert.NotNil(t, g.Events)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("a"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Digest([]byte("a")))
	assert.NotEqual(t, a, Digest([]byte("b")))
	assert.NoError(t, verify([]byte("a"), ""))
	assert.ErrorIs(t, verify([]byte("a"), Digest([]byte("b"))), ErrCorrupt)
}

func TestFileRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f := NewFile(dir, "", nil)
	assert.Equal(t, filepath.Join(dir, DefaultNamespace+FileSuffix), f.Path())

	_, err := f.Load()
	require.ErrorIs(t, err, ErrNotFound)

	want := sampleGeos()
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(f.Path() + SumSuffix)
	assert.NoError(t, err, "digest file should exist")
	_, err = os.Stat(f.Path() + TmpSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist, "temp file should be renamed away")
}

func TestFileBackup(t *testing.T) {
	f := NewFile(t.TempDir(), "events", nil)
	first := sampleGeos()
	require.NoError(t, f.Save(first))

	second := sampleGeos()
	second[0].Events = nil
	require.NoError(t, f.Save(second))

	backup, err := os.ReadFile(f.Path() + BackupSuffix)
	require.NoError(t, err)
	geos, err := Decode(backup)
	require.NoError(t, err)
	assert.Len(t, geos[0].Events, 1, "backup should hold the previous state")
}

func TestFileDigestMismatch(t *testing.T) {
	f := NewFile(t.TempDir(), "", nil)
	require.NoError(t, f.Save(sampleGeos()))

	require.NoError(t, os.WriteFile(f.Path(), []byte(`{"state":{"geos":[]},"version":0}`), FilePermissions))
	_, err := f.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileWithoutDigest(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir, "", nil)
	body := `{"state":{"geos":[{"id":"global","name":"Global","displayName":"Global","region":"Worldwide","events":[]}]},"version":0}`
	require.NoError(t, os.WriteFile(f.Path(), []byte(body), FilePermissions))

	geos, err := f.Load()
	require.NoError(t, err)
	require.Len(t, geos, 1)
	assert.Equal(t, "global", geos[0].ID)
}

func TestFileCorrupt(t *testing.T) {
	f := NewFile(t.TempDir(), "", nil)
	require.NoError(t, os.WriteFile(f.Path(), []byte("not json"), FilePermissions))
	_, err := f.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := OpenSQLite(":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Load()
	require.ErrorIs(t, err, ErrNotFound)

	want := sampleGeos()
	require.NoError(t, db.Save(want))
	// second save exercises the upsert path
	want[0].Events[0].Title = "Q4 Town Hall (moved)"
	require.NoError(t, db.Save(want))

	got, err := db.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
	}

	var rows int
	require.NoError(t, db.sqlDB.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteFileAndChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := OpenSQLite(path, "custom")
	require.NoError(t, err)
	require.NoError(t, db.Save(sampleGeos()))

	_, err = db.sqlDB.Exec(`UPDATE local_storage SET value = ? WHERE key = ?`, `{"state":{"geos":[]},"version":0}`, "custom")
	require.NoError(t, err)
	_, err = db.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	require.NoError(t, db.Close())

	_, err = OpenSQLite(" ", "")
	assert.Error(t, err)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := OpenSQLite(path, "")
	require.NoError(t, err)
	require.NoError(t, db.Save(sampleGeos()))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path, "")
	require.NoError(t, err)
	defer db.Close()
	geos, err := db.Load()
	require.NoError(t, err)
	assert.Len(t, geos, 2)
}

func TestMemory(t *testing.T) {
	m := NewMemory("")
	_, err := m.Load()
	require.ErrorIs(t, err, ErrNotFound)
	_, ok := m.Raw()
	assert.False(t, ok)

	require.NoError(t, m.Save(sampleGeos()))
	raw, ok := m.Raw()
	require.True(t, ok)
	assert.Contains(t, string(raw), `"version":0`)
	assert.Contains(t, string(raw), `"startDateTime":"2025-12-15T14:00:00Z"`)

	got, err := m.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(sampleGeos(), got); diff != "" {
		t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
	}
}

func TestFileNewStateWithPreviousDigest(t *testing.T) {
	f := NewFile(t.TempDir(), "", nil)
	first := sampleGeos()
	require.NoError(t, f.Save(first))
	oldSum, err := os.ReadFile(f.Path() + SumSuffix)
	require.NoError(t, err)

	second := sampleGeos()
	second[0].Events[0].Title = "Q4 Town Hall (moved)"
	require.NoError(t, f.Save(second))

	// digest rename of the second save never happened
	require.NoError(t, os.WriteFile(f.Path()+SumSuffix, oldSum, FilePermissions))

	got, err := f.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSaveKeepsStateWhenDigestCannotBeReplaced(t *testing.T) {
	f := NewFile(t.TempDir(), "", nil)
	first := sampleGeos()
	require.NoError(t, f.Save(first))

	// a non-empty directory in place of the digest can be neither removed nor renamed over
	sumPath := f.Path() + SumSuffix
	require.NoError(t, os.Remove(sumPath))
	require.NoError(t, os.MkdirAll(filepath.Join(sumPath, "blocker"), DirPermissions))

	second := sampleGeos()
	second[0].Events = nil
	assert.Error(t, f.Save(second))

	got, err := f.Load()
	require.NoError(t, err, "state must stay loadable after a failed save")
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("loaded state mismatch (-want +got):\n%s", diff)
	}
	_, err = os.Stat(f.Path() + TmpSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist, "temp file is cleaned up")
}

func TestFileInterruptedSaveWithoutDigest(t *testing.T) {
	f := NewFile(t.TempDir(), "", nil)
	require.NoError(t, f.Save(sampleGeos()))
	// crash after the old digest was removed
	require.NoError(t, os.Remove(f.Path()+SumSuffix))

	geos, err := f.Load()
	require.NoError(t, err)
	assert.Len(t, geos, 2)
}
