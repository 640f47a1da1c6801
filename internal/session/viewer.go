package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogFile describes a session log file on disk.
type LogFile struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	NumEvents int
}

// ListLogs finds session log files in dir, newest first.
func ListLogs(dir string) ([]LogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var files []LogFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "-run.jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		events, _ := ReadEvents(path)
		files = append(files, LogFile{
			Path:      path,
			Name:      e.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			NumEvents: len(events),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// ReadEvents parses all events from a session log file. Malformed lines
// are skipped so a truncated log still renders.
func ReadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}
	return events, nil
}

// RenderTimeline writes a human-readable session timeline to w.
func RenderTimeline(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	start := events[0].Timestamp
	for _, ev := range events {
		ts := formatElapsed(ev.Timestamp.Sub(start))

		switch ev.Type {
		case EventRunStart:
			fmt.Fprintf(w, "[%s] Run started  blueprint=%s  checks=%d\n",
				ts, str(ev.Data, "blueprint"), num(ev.Data, "check_count"))

		case EventCheckStart:
			fmt.Fprintf(w, "[%s]   Check %d/%d: %s\n",
				ts, num(ev.Data, "num"), num(ev.Data, "total"), str(ev.Data, "check"))

		case EventCheckEnd:
			status := str(ev.Data, "status")
			icon := "✓"
			if status != "Success" {
				icon = "✗"
			}
			fmt.Fprintf(w, "[%s]   %s %s [%s] (%dms)\n",
				ts, icon, str(ev.Data, "check"), status, num(ev.Data, "duration_ms"))

		case EventCheckSkipped:
			fmt.Fprintf(w, "[%s]   - %s skipped: %s\n",
				ts, str(ev.Data, "check"), str(ev.Data, "reason"))

		case EventFixStart:
			fmt.Fprintf(w, "[%s]   Fixing %s...\n", ts, str(ev.Data, "check"))

		case EventFixEnd:
			fmt.Fprintf(w, "[%s]   Fixed %s [%s]\n",
				ts, str(ev.Data, "check"), str(ev.Data, "status"))

		case EventError:
			fmt.Fprintf(w, "[%s] Error: %s\n", ts, str(ev.Data, "message"))

		case EventRunEnd:
			fmt.Fprintf(w, "[%s] Run complete  %d checks, %d failed, %d skipped (%dms)\n",
				ts, num(ev.Data, "total"), num(ev.Data, "failed"),
				num(ev.Data, "skipped"), num(ev.Data, "duration_ms"))

		default:
			fmt.Fprintf(w, "[%s] %s %v\n", ts, ev.Type, ev.Data)
		}
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%6dms", d.Milliseconds())
	}
	return fmt.Sprintf("%6.1fs", d.Seconds())
}

func str(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// num extracts an integer from JSON-decoded event data, which carries
// numbers as float64.
func num(data map[string]any, key string) int {
	switch n := data[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
