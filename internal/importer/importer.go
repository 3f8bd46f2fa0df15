// Package importer bulk-loads life-log entries from JSONL exports, running
// each line through classification and persistence.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lifebase/lifebase/internal/assistant"
	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
)

// entryLine is one JSONL line of an export file.
type entryLine struct {
	RecordedAt *time.Time `json:"recorded_at"`
	Amount     *float64   `json:"amount"`
	Content    string     `json:"content"`
	InputType  string     `json:"input_type"`
}

// Summary reports the outcome of one import run.
type Summary struct {
	Imported int
	Failed   int
	Skipped  int
}

// Importer drives bulk imports through the orchestrator's entry path.
type Importer struct {
	orchestrator *assistant.Orchestrator
	progress     io.Writer
}

// New creates an importer. Progress output goes to progress; pass io.Discard
// to silence it.
func New(orchestrator *assistant.Orchestrator, progress io.Writer) *Importer {
	if progress == nil {
		progress = io.Discard
	}
	return &Importer{
		orchestrator: orchestrator,
		progress:     progress,
	}
}

// ImportFile reads a JSONL file and persists each entry for the user.
// Malformed lines are skipped; persistence failures are counted but do not
// abort the run.
func (i *Importer) ImportFile(ctx context.Context, userID, path string) (*Summary, error) {
	if userID == "" {
		return nil, common.ErrAuthenticationRequired
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	lines, err := countLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to scan import file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind import file: %w", err)
	}

	bar := progressbar.NewOptions(lines,
		progressbar.OptionSetWriter(i.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing entries..."),
	)

	summary := &Summary{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		_ = bar.Add(1)

		line := scanner.Bytes()
		if len(line) == 0 {
			summary.Skipped++
			continue
		}

		var entry entryLine
		if err := json.Unmarshal(line, &entry); err != nil {
			summary.Skipped++
			continue
		}
		if entry.Content == "" {
			summary.Skipped++
			continue
		}

		in := classifier.Input{
			Text:   entry.Content,
			Amount: entry.Amount,
			Time:   entry.RecordedAt,
		}

		inputType := model.InputType(entry.InputType)
		if inputType == "" {
			inputType = model.InputTypeText
		}

		if _, err := i.orchestrator.LogEntry(ctx, userID, in, inputType); err != nil {
			common.LogError(err, "failed to import entry", common.Fields{
				"content": entry.Content,
			})
			summary.Failed++
			continue
		}
		summary.Imported++
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read import file: %w", err)
	}

	common.LogInfo("import complete", common.Fields{
		"file":     path,
		"imported": summary.Imported,
		"failed":   summary.Failed,
		"skipped":  summary.Skipped,
	})
	return summary, nil
}

func countLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
