package main

import (
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/chip8term/chip8"
	"github.com/nf/chip8term/pump"
)

// reloadDelay is how long a ROM must be left alone before it is reloaded.
const reloadDelay = 100 * time.Millisecond

// watchROM watches romFile and, shortly after each change, loads it into a
// new machine that is delivered on the returned channel. Closing the
// returned io.Closer stops the watch.
func watchROM(romFile string, trace func(uint16, chip8.Op)) (<-chan pump.Interpreter, io.Closer, error) {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	swap := make(chan pump.Interpreter)
	go func() {
		var (
			reload  <-chan time.Time
			pending pump.Interpreter
			out     chan<- pump.Interpreter // nil unless pending is set
		)
		for {
			select {
			case <-reload:
				m, err := loadROM(romFile, trace)
				if err != nil {
					log.Printf("watch: %v", err)
					break
				}
				log.Printf("watch: reload %s", filepath.Base(romFile))
				pending, out = m, swap
			case out <- pending:
				pending, out = nil, nil
			case ev, ok := <-watcher.Event:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() {
					reload = time.After(reloadDelay)
				}
			case err, ok := <-watcher.Error:
				if !ok {
					return
				}
				log.Printf("watch: watcher: %v", err)
			}
		}
	}()
	return swap, watcher, nil
}
