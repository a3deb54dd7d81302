package shell

import "golang.org/x/sys/unix"

// Raw wait-status encodings as the Linux kernel reports them.

func wsExited(code int) unix.WaitStatus {
	return unix.WaitStatus(code << 8)
}

func wsSignaled(sig int) unix.WaitStatus {
	return unix.WaitStatus(sig)
}

func wsStopped(sig int) unix.WaitStatus {
	return unix.WaitStatus(sig<<8 | 0x7f)
}

func wsContinued() unix.WaitStatus {
	return unix.WaitStatus(0xffff)
}
