package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// QuitKey is the key that stops the monitor.
const QuitKey = 'q'

// ErrQuit is returned by the key listener when the quit key was pressed.
var ErrQuit = errors.New("quit requested")

// InterruptError is the cancellation cause recorded when a signal stops the
// monitor.
type InterruptError struct {
	Signal string
}

func (e InterruptError) Error() string {
	return "received " + e.Signal
}

// InterruptSignal reports the signal that canceled ctx, if any.
func InterruptSignal(ctx context.Context) (string, bool) {
	var ie InterruptError
	if errors.As(context.Cause(ctx), &ie) {
		return ie.Signal, true
	}
	return "", false
}

// WaitForQuit reads r until the quit key arrives, returning ErrQuit.
// It returns nil on EOF or when r was canceled.
func WaitForQuit(r io.Reader) error {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b == QuitKey {
				return ErrQuit
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, cancelreader.ErrCanceled) {
				return nil
			}
			return err
		}
	}
}

// ListenForQuit watches in for the quit key until ctx is done. When in is a
// terminal it is switched to unbuffered, no-echo input for the duration and
// restored before returning. When in is not a terminal, or keys cannot be
// read on this platform, it just waits for ctx.
func ListenForQuit(ctx context.Context, in *os.File) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		<-ctx.Done()
		return nil
	}

	restore, err := enableCbreak(fd)
	if err != nil {
		<-ctx.Done()
		return nil
	}
	defer restore()

	cr, err := cancelreader.NewReader(in)
	if err != nil {
		<-ctx.Done()
		return nil
	}
	defer cr.Close()

	stop := context.AfterFunc(ctx, func() { cr.Cancel() })
	defer stop()

	return WaitForQuit(cr)
}
