// Package report defines the JSON schema of recorded race sessions and the
// helpers to gather, persist and render them.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// RaceResult holds one lane of one race.
type RaceResult struct {
	Implementation string  `json:"implementation"`
	NumItems       int     `json:"num_items"`
	Iteration      int     `json:"iteration"`
	Parallel       bool    `json:"parallel"`
	ElapsedNs      int64   `json:"elapsed_ns"`
	NsPerItem      float64 `json:"ns_per_item"`
	Place          int     `json:"place"`
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete session.
type FullReport struct {
	SessionID   string       `json:"session_id"`
	SessionTime string       `json:"session_time"`
	SystemInfo  SystemInfo   `json:"system_info"`
	Results     []RaceResult `json:"results"`
}

// NewSession starts an empty report stamped with a fresh ID and the current time.
func NewSession(info SystemInfo) FullReport {
	return FullReport{
		SessionID:   uuid.New().String(),
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  info,
	}
}

// GatherSystemInfo collects basic CPU and memory details. Fields that cannot
// be read on this platform are left empty.
func GatherSystemInfo() SystemInfo {
	info := SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}

// Load reads every session stored in path. A zero-length file holds no
// sessions.
func Load(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("unmarshalling %q: %w", path, err)
	}
	return sessions, nil
}

// Append adds sessions to the JSON array stored in path, creating the file if
// needed. A sibling .lock file serializes concurrent writers, and the new
// contents replace path through a rename so a crash never leaves it half
// written.
func Append(path string, sessions ...FullReport) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %q: %w", path, err)
	}
	defer lock.Unlock()

	previous, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	updated := append(previous, sessions...)
	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling sessions: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
