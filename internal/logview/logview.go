// Package logview is a read-only tool over the per-run log files the
// pipeline writes. It never modifies the logs directory.
package logview

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

var reTimestamp = regexp.MustCompile(`(\d{8}_\d{6})`)

// RunLog describes one log file in the logs directory.
type RunLog struct {
	Name      string
	Path      string
	Timestamp time.Time
	IsError   bool
	Size      int64
}

// List returns all run logs, newest first. Files without a parseable
// timestamp sort last.
func List(logsDir string) ([]RunLog, error) {
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return nil, fmt.Errorf("read logs dir: %w", err)
	}

	var logs []RunLog
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, RunLog{
			Name:      entry.Name(),
			Path:      filepath.Join(logsDir, entry.Name()),
			Timestamp: parseTimestamp(entry.Name()),
			IsError:   strings.HasSuffix(entry.Name(), "_error.log"),
			Size:      info.Size(),
		})
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}

func parseTimestamp(name string) time.Time {
	m := reTimestamp.FindString(name)
	if m == "" {
		return time.Time{}
	}
	ts, err := time.Parse("20060102_150405", m)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Read returns the lines of one log file, optionally keeping only error
// lines or lines containing filter (case-insensitive).
func Read(path string, errorsOnly bool, filter string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if errorsOnly && !strings.Contains(line, "[ERROR]") {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(line), strings.ToLower(filter)) {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// Table renders the log listing for the terminal.
func Table(logs []RunLog) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Log", "Timestamp", "Kind", "Bytes"})
	for _, l := range logs {
		kind := "info"
		if l.IsError {
			kind = "error"
		}
		ts := ""
		if !l.Timestamp.IsZero() {
			ts = l.Timestamp.Format("2006-01-02 15:04:05")
		}
		tw.AppendRow(table.Row{l.Name, ts, kind, l.Size})
	}
	return tw.Render()
}
