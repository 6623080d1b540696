// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// fatalErrnos exhaust inotify or file descriptor limits; the watcher cannot
// recover from them and watch mode must stop.
var fatalErrnos = []syscall.Errno{
	syscall.ENOSPC, // fs.inotify.max_user_watches reached
	syscall.EMFILE,
	syscall.ENFILE,
}

func isFatalFsnotifyError(err error) bool {
	for _, errno := range fatalErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
