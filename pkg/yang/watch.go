package yang

// Directory watching (spec.md §4.10/§5): a long-running yangkit
// process can watch a set of directories for changed *.yang files and
// re-parse the affected module through a Ctx, rather than require a
// restart. This mirrors the fsnotify-driven reload loop found
// elsewhere in the retrieved example pack.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is invoked with the path of a *.yang file that changed.
type ReloadFunc func(path string) error

// WatchPaths watches dirs (recursively) for created, written, or
// renamed *.yang files and invokes reload for each one, logging and
// counting failures through c's Logger and Metrics rather than
// stopping the watch loop. It blocks until ctx is cancelled (returning
// ctx.Err()) or the watcher's event or error channel closes (returning
// nil); errors the watcher reports are logged and the loop goes on.
func (c *Ctx) WatchPaths(ctx context.Context, dirs []string, reload ReloadFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("yang: creating watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := addRecursive(w, dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".yang") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.log.Infof("watch: reloading %s", ev.Name)
			if err := reload(ev.Name); err != nil {
				c.log.Errorf("watch: reload %s failed: %v", ev.Name, err)
				c.metrics.LoadFailed("watch")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.log.Errorf("watch: fsnotify error: %v", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
