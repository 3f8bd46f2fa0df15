package importer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebase/lifebase/internal/assistant"
	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/llm"
	"github.com/lifebase/lifebase/internal/memory"
	"github.com/lifebase/lifebase/internal/model"
	"github.com/lifebase/lifebase/internal/testutil"
)

func newTestImporter(t *testing.T) (*Importer, *testutil.TestDB) {
	t.Helper()

	db := testutil.SetupTestDB(t, "user-1", model.ModuleTypeDiet)

	cls, err := classifier.New(classifier.DefaultRules())
	require.NoError(t, err)

	orch := assistant.New(db.Storage, &llm.MockClient{}, memory.NewInMemoryStore(0), cls, assistant.Config{})
	return New(orch, io.Discard), db
}

func writeImportFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entries.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0600))
	return path
}

func TestImportFile(t *testing.T) {
	imp, db := newTestImporter(t)
	ctx := context.Background()

	path := writeImportFile(t, `{"content": "午餐花了38元", "recorded_at": "2026-08-30T12:10:00Z"}
{"content": "晚餐吃了饺子", "amount": -25}
{"content": "收到工资5000"}
`)

	summary, err := imp.ImportFile(ctx, "user-1", path)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)

	records, err := db.Storage.GetRecentRecords(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// Entries land in their classified modules.
	diet := db.MustGetModule(model.ModuleTypeDiet)
	dietRecords, err := db.Storage.GetRecordsByModule(ctx, "user-1", diet.ID, 10)
	require.NoError(t, err)
	assert.Len(t, dietRecords, 2)
}

func TestImportFile_SkipsBadLines(t *testing.T) {
	imp, _ := newTestImporter(t)

	path := writeImportFile(t, `{"content": "午餐花了38元"}
not json at all
{"amount": -10}

{"content": "晚餐吃了饺子"}
`)

	summary, err := imp.ImportFile(context.Background(), "user-1", path)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
}

func TestImportFile_RequiresUser(t *testing.T) {
	imp, _ := newTestImporter(t)

	_, err := imp.ImportFile(context.Background(), "", "whatever.jsonl")
	require.ErrorIs(t, err, common.ErrAuthenticationRequired)
}

func TestImportFile_MissingFile(t *testing.T) {
	imp, _ := newTestImporter(t)

	_, err := imp.ImportFile(context.Background(), "user-1", filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
}
