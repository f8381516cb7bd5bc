//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a browser and its helper processes using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return // never signal our own group
	}
	// Best effort: the printer calls launcher.Kill() right after.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
