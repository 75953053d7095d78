// Package pomodoro is the focus-session logger: a start/stop/rate state
// machine persisted to the append-only CSV log that the report's focus
// overlay consumes.
package pomodoro

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yuzuha/screenscribe/internal/core/constants"
)

// Session modes. Break sessions are logged for completeness but the
// report only scores Focus rows.
const (
	ModeFocus = "Focus"
	ModeBreak = "Break"
)

var (
	ErrAlreadyActive = errors.New("a session is already running")
	ErrNotActive     = errors.New("no session is running")
	ErrNothingToRate = errors.New("no completed session to rate")
	ErrAlreadyRated  = errors.New("last session is already rated")
)

var logHeader = []string{"start_time", "end_time", "mode", "score"}

// activeState is the crash-safe record of a running session.
type activeState struct {
	Start string `json:"start"`
	Mode  string `json:"mode"`
}

// Session is one completed focus or break session.
type Session struct {
	Start time.Time
	End   time.Time
	Mode  string
}

// Tracker drives the session state machine. State lives in two files
// next to each other: the CSV log of completed sessions and a small
// JSON marker while one is running.
type Tracker struct {
	logPath   string
	statePath string
	now       func() time.Time
}

// NewTracker creates a tracker logging to logPath.
func NewTracker(logPath string) *Tracker {
	return &Tracker{
		logPath:   logPath,
		statePath: logPath + ".active",
		now:       time.Now,
	}
}

// Start begins a session in the given mode. Fails if one is running.
func (t *Tracker) Start(mode string) error {
	if mode != ModeFocus && mode != ModeBreak {
		return fmt.Errorf("unknown session mode %q", mode)
	}
	if _, err := os.Stat(t.statePath); err == nil {
		return ErrAlreadyActive
	}

	state := activeState{Start: t.now().Format(constants.FocusLogLayout), Mode: mode}
	data, err := sonic.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.statePath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return os.WriteFile(t.statePath, data, 0644)
}

// Stop ends the running session and appends it to the log.
func (t *Tracker) Stop() (Session, error) {
	data, err := os.ReadFile(t.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNotActive
		}
		return Session{}, err
	}

	var state activeState
	if err := sonic.Unmarshal(data, &state); err != nil {
		return Session{}, fmt.Errorf("corrupt session state: %w", err)
	}
	start, err := time.Parse(constants.FocusLogLayout, state.Start)
	if err != nil {
		return Session{}, fmt.Errorf("corrupt session state: %w", err)
	}

	session := Session{Start: start, End: t.now(), Mode: state.Mode}
	if err := t.appendRow(session); err != nil {
		return Session{}, err
	}
	if err := os.Remove(t.statePath); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Active returns the running session's start and mode, if any.
func (t *Tracker) Active() (start time.Time, mode string, ok bool) {
	data, err := os.ReadFile(t.statePath)
	if err != nil {
		return time.Time{}, "", false
	}
	var state activeState
	if err := sonic.Unmarshal(data, &state); err != nil {
		return time.Time{}, "", false
	}
	start, err = time.Parse(constants.FocusLogLayout, state.Start)
	if err != nil {
		return time.Time{}, "", false
	}
	return start, state.Mode, true
}

// Rate scores the most recently completed Focus session, 1 to 10. Break
// rows are skipped since the report never scores them. A session can be
// rated once.
func (t *Tracker) Rate(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("score must be between 1 and 10, got %d", score)
	}

	records, err := t.readLog()
	if err != nil {
		return err
	}

	idx := -1
	for i := len(records) - 1; i >= 1; i-- {
		if len(records[i]) > 2 && records[i][2] == ModeFocus {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNothingToRate
	}

	row := records[idx]
	for len(row) < len(logHeader) {
		row = append(row, "")
	}
	if row[3] != "" {
		return ErrAlreadyRated
	}
	row[3] = strconv.Itoa(score)
	records[idx] = row

	return t.writeLog(records)
}

func (t *Tracker) appendRow(s Session) error {
	if err := os.MkdirAll(filepath.Dir(t.logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	_, statErr := os.Stat(t.logPath)
	file, err := os.OpenFile(t.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open focus log: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if os.IsNotExist(statErr) {
		if err := w.Write(logHeader); err != nil {
			return err
		}
	}
	row := []string{
		s.Start.Format(constants.FocusLogLayout),
		s.End.Format(constants.FocusLogLayout),
		s.Mode,
		"",
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (t *Tracker) readLog() ([][]string, error) {
	file, err := os.Open(t.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNothingToRate
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func (t *Tracker) writeLog(records [][]string) error {
	tmp := t.logPath + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, t.logPath)
}
