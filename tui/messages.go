package tui

import "co2log/core"

// SessionsMsg carries a freshly fetched and segmented session list.
type SessionsMsg struct {
	Sessions []core.Session
}

// FetchErrorMsg is sent when a refetch fails. The viewer stays on its
// current data and shows the error in the status line.
type FetchErrorMsg struct {
	Err error
}
