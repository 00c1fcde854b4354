package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nxadm/tail"

	"gridlens/internal/detect"
	"gridlens/internal/model"
	"gridlens/internal/util/logx"
)

const maxLineBytes = 1024 * 1024

// OpenFile loads a JSONL or CSV dataset into a Local source. Columns may
// come from the catalog; when nil they are inferred from the data. With
// follow set (JSONL only), appended lines stream in via tail; otherwise the
// file is watched with fsnotify and rewrites reload the whole dataset.
func OpenFile(ctx context.Context, path string, columns []model.Column, follow bool) (*Local, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, err
	}
	if columns == nil {
		columns = detect.Columns(sample(rows, 50))
	}
	l := NewLocal(columns, rows)
	if follow && !isCSV(path) {
		go l.followFile(ctx, path)
	} else {
		go l.watchFile(ctx, path)
	}
	return l, nil
}

func sample(rows []model.Row, n int) []model.Row {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func loadRows(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()
	if isCSV(path) {
		return readCSV(f)
	}
	return readJSONL(f)
}

func readJSONL(r io.Reader) ([]model.Row, error) {
	var rows []model.Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		row, ok := decodeLine(scanner.Text())
		if ok {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return rows, nil
}

func decodeLine(line string) (model.Row, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	var row model.Row
	if err := json.Unmarshal([]byte(line), &row); err != nil {
		logx.Warnf("source: skipping invalid line: %v", err)
		return nil, false
	}
	return row, true
}

func readCSV(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("source: csv header: %w", err)
	}
	var rows []model.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: csv: %w", err)
		}
		row := make(model.Row, len(header))
		for i, key := range header {
			if i >= len(rec) {
				break
			}
			row[key] = coerce(rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// coerce turns CSV cell text into the scalar JSON would have produced, so
// boolean normalization and numeric sorting behave the same for both
// formats.
func coerce(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	case "":
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func (l *Local) followFile(ctx context.Context, path string) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		l.notify(Event{Err: err})
		return
	}
	defer t.Cleanup()
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case line, ok := <-t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				l.notify(Event{Err: line.Err})
				continue
			}
			if row, ok := decodeLine(line.Text); ok {
				l.Append(row)
			}
		}
	}
}

func (l *Local) watchFile(ctx context.Context, path string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logx.Warnf("source: watch disabled: %v", err)
		return
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		logx.Warnf("source: watch %s: %v", path, err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Name != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			rows, err := loadRows(path)
			if err != nil {
				l.notify(Event{Err: err})
				continue
			}
			logx.Infof("source: %s changed, reloaded %d rows", path, len(rows))
			l.Replace(nil, rows)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logx.Warnf("source: watcher: %v", err)
		}
	}
}
