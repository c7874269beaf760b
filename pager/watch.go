package pager

import (
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// FileChangedMsg is sent when the watched document is written.
type FileChangedMsg struct {
	Path string
}

// Watch blocks until path changes and reports it as FileChangedMsg.
// 监听所在目录而不是文件本身，编辑器常以重命名方式保存。
func Watch(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Printf("pager: resolving %s: %v", path, err)
			return nil
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Printf("pager: failed to create file watcher: %v", err)
			return nil
		}
		defer watcher.Close()

		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			log.Printf("pager: failed to watch %s: %v", filepath.Dir(abs), err)
			return nil
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				log.Printf("pager: detected change in %s", abs)
				return FileChangedMsg{Path: path}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("pager: file watcher error: %v", err)
			}
		}
	}
}
