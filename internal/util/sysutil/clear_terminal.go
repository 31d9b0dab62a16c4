package sysutil

import (
	"os"
	"os/exec"
	"runtime"
)

// ClearTerminal clears the terminal screen in supported operating systems.
// It does nothing elsewhere.
func ClearTerminal() {
	cmd := clearCommand(runtime.GOOS)
	if cmd == nil {
		return
	}
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}

// clearCommand returns the command clearing the screen on goos, or nil.
func clearCommand(goos string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("cmd", "/c", "cls")
	case "linux", "darwin", "freebsd", "openbsd", "netbsd":
		return exec.Command("clear")
	}
	return nil
}
