// Package cleanup removes recorder video files past their retention
// window. The report itself never touches them; this is the only
// destructive step in the system.
package cleanup

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuzuha/screenscribe/internal/util"
)

// Sweep deletes *.mp4 files under dataDir whose modification time is
// older than retention. Another process may be deleting the same files;
// removal failures are ignored, not retried. Returns the deleted count.
func Sweep(dataDir string, retention time.Duration) int {
	cutoff := time.Now().Add(-retention)
	deleted := 0

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".mp4") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
		return nil
	})
	if err != nil {
		util.LogWarnf("Video cleanup walk failed: %v", err)
	}

	if deleted > 0 {
		util.LogInfof("Cleanup complete, deleted %d old video files", deleted)
	}
	return deleted
}
