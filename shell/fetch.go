package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Fetch runs one complete transfer over rw: send the read command, feed
// arriving chunks through an Extractor, and race the whole exchange against
// the deadline. It returns the sanitized CSV payload on success.
//
// One transfer per channel at a time; callers serialize. The read loop runs
// on its own goroutine so a stalled device cannot wedge the deadline; the
// channel's reads must return periodically (serial ports use a read timeout)
// for that goroutine to notice cancellation.
func Fetch(ctx context.Context, rw io.ReadWriter, opts Options) (string, error) {
	opts = opts.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Debug("sending command", "command", opts.Command)
	if _, err := io.WriteString(rw, opts.Command+"\n"); err != nil {
		return "", fmt.Errorf("send command: %w", err)
	}

	chunks := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 4096)
		for ctx.Err() == nil {
			n, err := rw.Read(buf)
			if n > 0 {
				select {
				case chunks <- string(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ex := NewExtractor(opts)
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", ErrTimeout
			}
			return "", ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				// Stream ended without a prompt: the terminal
				// markers never appeared.
				return "", ErrMalformedResponse
			}
			return "", fmt.Errorf("read device: %w", err)
		case chunk := <-chunks:
			log.Debug("chunk received", "bytes", len(chunk))
			done, err := ex.Feed(chunk)
			if err != nil {
				return "", err
			}
			if done {
				return ex.CSV(), nil
			}
		}
	}
}
