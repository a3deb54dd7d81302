package shell

import "golang.org/x/sys/unix"

// Raw wait-status encodings as the Darwin kernel reports them. The continued
// marker differs from Linux; the rest matches.

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
	return unix.WaitStatus(0x13<<8 | 0x7f)
}
