package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jesspatton/lazyjest/ui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: lazyjest <path-to-tests-directory>")
		os.Exit(2)
	}

	root := os.Args[1]
	if err := checkRoot(root); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; stray log output would corrupt it.
	if os.Getenv("LAZYJEST_DEBUG") != "" {
		f, err := tea.LogToFile("lazyjest.log", "debug")
		if err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(ui.NewModel(root), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// checkRoot verifies the scan root is a readable directory before the TUI
// takes over the terminal. Later refresh failures are logged and keep the
// previous catalog; a bad root at startup is fatal.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return err
	}
	return nil
}
