package retry

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
)

// transientErrnos are raised while another process briefly holds a file.
var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETXTBSY,
}

// FileErrorClassifier treats short-lived filesystem contention as transient.
// Missing files, permission problems and cancellation are fatal.
type FileErrorClassifier struct{}

func NewFileErrorClassifier() *FileErrorClassifier {
	return &FileErrorClassifier{}
}

// IsTransient implements ErrorClassifier.
func (c *FileErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false
	}
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
