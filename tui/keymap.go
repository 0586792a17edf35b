package tui

// Key binding constants used in handleKey.
const (
	KeyQuit    = "q"
	KeyCtrlC   = "ctrl+c"
	KeyPrev    = "left"
	KeyPrevVim = "h"
	KeyNext    = "right"
	KeyNextVim = "l"
	KeyRefetch = "r"
	KeyFirst   = "home"
	KeyLast    = "end"
)
