//go:build !windows

package process

import "syscall"

// KillProcessGroup kills a browser and its helper processes by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return // never signal our own group
	}
	// Best effort: the printer calls launcher.Kill() right after.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
