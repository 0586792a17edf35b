// Package shell extracts a CSV payload from the device's interactive shell
// transcript. The transcript interleaves command echo, ANSI styling, error
// text, and a trailing prompt with the data itself, so extraction runs as an
// explicit state machine over arriving chunks: await the command echo, await
// the CSV header, collect data until the prompt.
package shell

import (
	"strings"
	"time"

	"co2log/core"

	"github.com/charmbracelet/x/ansi"
)

const (
	// DefaultCommand reads the fixed log path off the device's storage.
	DefaultCommand = "cat /storage/co2_log.csv"

	// DefaultEchoToken is the distinguishing substring of the echoed
	// command that marks the end of the echo phase.
	DefaultEchoToken = "co2_log.csv"

	// DefaultTerminator is the shell prompt that ends a transfer. Some
	// firmware revisions print a bare ">" instead; see AllowBarePrompt.
	DefaultTerminator = ">:"

	// DefaultTimeout bounds the whole transfer, wall clock.
	DefaultTimeout = 45 * time.Second

	// DefaultMaxBuffer caps the transcript buffer. Oldest content is
	// evicted past this; a header that hasn't appeared by then never will.
	DefaultMaxBuffer = 50 * 1024
)

// errorMarkers are the device shell's failure phrases, matched case-sensitive
// against the raw (unstripped) transcript.
var errorMarkers = []string{
	"File not found",
	"Error",
	"Invalid",
	"No such file",
	"Cannot open",
	"Permission denied",
}

// Options configures one transfer. The zero value uses all defaults.
type Options struct {
	// Command is the newline-terminated line sent to the device shell.
	Command string
	// EchoToken is the substring that identifies the command echo.
	EchoToken string
	// Header is the CSV header line that starts payload capture.
	Header string
	// Terminator is the prompt text that completes the transfer.
	Terminator string
	// AllowBarePrompt additionally accepts a bare ">" as the terminator.
	// More permissive, and risks truncating data lines containing ">".
	AllowBarePrompt bool
	// Timeout bounds the whole transfer.
	Timeout time.Duration
	// MaxBuffer caps the transcript buffer in bytes.
	MaxBuffer int
}

func (o Options) withDefaults() Options {
	if o.Command == "" {
		o.Command = DefaultCommand
	}
	if o.EchoToken == "" {
		o.EchoToken = DefaultEchoToken
	}
	if o.Header == "" {
		o.Header = core.Header
	}
	if o.Terminator == "" {
		o.Terminator = DefaultTerminator
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxBuffer <= 0 {
		o.MaxBuffer = DefaultMaxBuffer
	}
	return o
}

type state int

const (
	stateAwaitingEcho state = iota
	stateAwaitingHeader
	stateCollectingData
	stateComplete
	stateFailed
)

// Extractor is the transcript state machine. Feed it chunks in arrival
// order; it owns a bounded raw buffer for marker scanning and a payload
// accumulator that starts after the command echo. One Extractor serves
// exactly one transfer.
type Extractor struct {
	opts    Options
	state   state
	buf     []byte
	payload []byte
	result  string
}

// NewExtractor builds an Extractor with defaults applied to opts.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts.withDefaults()}
}

// Feed consumes one chunk. It returns done=true once the machine reaches a
// terminal state; a non-nil error means the transfer failed and any
// accumulated CSV must be discarded.
func (e *Extractor) Feed(chunk string) (done bool, err error) {
	if e.state == stateComplete || e.state == stateFailed {
		return true, nil
	}

	e.append(chunk)
	if e.state != stateAwaitingEcho {
		e.payload = append(e.payload, chunk...)
	}

	// Re-run transitions until the buffer yields nothing new: one chunk
	// can carry echo, header, and prompt all at once.
	for {
		// Failure phrases win over every other marker so an error
		// mid-stream is never misread as data.
		if line, ok := e.scanError(); ok {
			e.state = stateFailed
			return true, &DeviceError{Line: line}
		}

		prev := e.state
		switch e.state {
		case stateAwaitingEcho:
			e.scanEcho()
		case stateAwaitingHeader:
			if err := e.scanHeader(); err != nil {
				e.state = stateFailed
				return true, err
			}
		case stateCollectingData:
			e.scanPrompt()
		}

		if e.state == stateComplete {
			e.finalize()
			return true, nil
		}
		if e.state == prev {
			return false, nil
		}
	}
}

// CSV returns the sanitized payload. Meaningful only after a successful
// transfer.
func (e *Extractor) CSV() string {
	return e.result
}

// finalize cleans the whole payload in one pass — escape sequences that
// straddled chunk boundaries strip correctly only over contiguous text —
// and slices it from the header onward.
func (e *Extractor) finalize() {
	cleaned := clean(string(e.payload))
	if idx := strings.Index(cleaned, e.opts.Header); idx >= 0 {
		e.result = cleaned[idx:]
	}
}

// append adds raw chunk bytes, evicting oldest content past MaxBuffer.
func (e *Extractor) append(chunk string) {
	e.buf = append(e.buf, chunk...)
	if over := len(e.buf) - e.opts.MaxBuffer; over > 0 {
		e.buf = e.buf[over:]
	}
}

// scanError reports the first raw transcript line containing a failure phrase.
func (e *Extractor) scanError() (string, bool) {
	raw := string(e.buf)
	hit := false
	for _, m := range errorMarkers {
		if strings.Contains(raw, m) {
			hit = true
			break
		}
	}
	if !hit {
		return "", false
	}
	for _, line := range strings.Split(raw, "\n") {
		for _, m := range errorMarkers {
			if strings.Contains(line, m) {
				return strings.TrimSpace(line), true
			}
		}
	}
	return "", false
}

// scanEcho advances past the command echo. The consumed prefix is dropped so
// later scans never re-match it; everything after the echo token seeds the
// payload accumulator.
func (e *Extractor) scanEcho() {
	idx := strings.Index(string(e.buf), e.opts.EchoToken)
	if idx < 0 {
		return
	}
	rest := e.buf[idx+len(e.opts.EchoToken):]
	e.buf = append([]byte(nil), rest...)
	e.payload = append([]byte(nil), rest...)
	e.state = stateAwaitingHeader
}

// scanHeader looks for the CSV header in the cleaned payload. A full buffer
// with no header means the device is not speaking the expected protocol.
func (e *Extractor) scanHeader() error {
	cleaned := clean(string(e.payload))
	if !strings.Contains(cleaned, e.opts.Header) {
		if len(e.buf) >= e.opts.MaxBuffer {
			return ErrMalformedResponse
		}
		return nil
	}
	e.state = stateCollectingData
	return nil
}

// scanPrompt completes the transfer once the shell prompt shows up in the
// raw buffer.
func (e *Extractor) scanPrompt() {
	raw := string(e.buf)
	if strings.Contains(raw, e.opts.Terminator) {
		e.state = stateComplete
		return
	}
	if e.opts.AllowBarePrompt && strings.Contains(raw, ">") {
		e.state = stateComplete
	}
}

// clean strips terminal escape sequences and carriage returns. ansi.Strip
// covers the SGR color codes the device emits plus cursor controls some
// firmware revisions add.
func clean(s string) string {
	return strings.ReplaceAll(ansi.Strip(s), "\r", "")
}
