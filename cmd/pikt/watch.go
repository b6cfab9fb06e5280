package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"nickandperla.net/pikt/pkg/pikt"
)

// debounce is how long a file must stay quiet before it is recompiled.
// Image editors often write a file in several steps.
const debounce = 150 * time.Millisecond

// watchFiles recompiles paths whenever they change, until ctx is done.
// Parent directories are watched so files replaced by rename are still seen.
func watchFiles(ctx context.Context, compiler *pikt.Compiler, p *printer, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets := make(map[string]string) // cleaned absolute path -> argument
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		targets[abs] = path
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			path, ok := targets[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			pending[path] = true
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(p.err, "watch: %v\n", err)
		case <-timer.C:
			for path := range pending {
				res, err := compiler.CompileFile(ctx, path)
				if err != nil {
					fmt.Fprintf(p.err, "Error: %v\n", err)
					continue
				}
				p.print(path, res)
			}
			clear(pending)
		}
	}
}
