package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var errNoROM = errors.New("no ROM selected")

// pickROM lists the ROMs in dir and returns the path of the one chosen.
// It returns errNoROM if the user backs out without choosing.
func pickROM(dir string) (string, error) {
	files, err := romFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no ROMs in %s", dir)
	}

	var (
		app    = tview.NewApplication()
		list   = tview.NewList().ShowSecondaryText(false)
		picked string
	)
	for _, name := range files {
		name := name
		list.AddItem(name, "", 0, func() {
			picked = name
			app.Stop()
		})
	}
	list.SetDoneFunc(app.Stop)
	list.SetBorder(true).
		SetTitle(" " + dir + " ").
		SetTitleColor(tcell.ColorYellow)

	if err := app.SetRoot(list, true).Run(); err != nil {
		return "", err
	}
	if picked == "" {
		return "", errNoROM
	}
	return filepath.Join(dir, picked), nil
}

// romFiles returns the names of the CHIP-8 programs in dir, sorted.
func romFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ch8", ".c8":
			names = append(names, e.Name())
		}
	}
	return names, nil
}
