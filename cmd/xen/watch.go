package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"nickandperla.net/xen/pkg/xen"
)

// settleDelay lets a burst of write events finish before the file is reread.
const settleDelay = 10 * time.Millisecond

func newWatcher(files []string) (*fsnotify.Watcher, map[string]string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	byPath := make(map[string]string, len(files))
	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			watcher.Close()
			return nil, nil, fmt.Errorf("watch %s: %w", file, err)
		}
		byPath[filepath.Clean(file)] = file
	}
	return watcher, byPath, nil
}

// watchFiles reloads each file whenever it changes, until stop fires.
// onReload, if set, is called after every reload.
func watchFiles(runtime *xen.Runtime, files []string, out io.Writer, stop <-chan os.Signal, onReload func(string)) error {
	watcher, byPath, err := newWatcher(files)
	if err != nil {
		return err
	}
	defer watcher.Close()
	return watchLoop(runtime, watcher, byPath, out, stop, onReload)
}

func watchLoop(runtime *xen.Runtime, watcher *fsnotify.Watcher, byPath map[string]string, out io.Writer, stop <-chan os.Signal, onReload func(string)) error {
	for {
		select {
		case <-stop:
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed := map[string]bool{}
			if file, ok := byPath[filepath.Clean(event.Name)]; ok {
				changed[file] = true
			}
			// flush the rest of the burst
		drain:
			for {
				time.Sleep(settleDelay)
				select {
				case more := <-watcher.Events:
					if file, ok := byPath[filepath.Clean(more.Name)]; ok {
						changed[file] = true
					}
				default:
					break drain
				}
			}

			for file := range changed {
				if err := runtime.LoadFile(file); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
				// text editors rename on save, so watch the new file
				watcher.Add(file)
				if onReload != nil {
					onReload(file)
				}
			}
		}
	}
}
