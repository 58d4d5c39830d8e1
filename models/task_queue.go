package models

// SessionCleanupArgs is the river job payload for the periodic purge of
// expired import sessions.
type SessionCleanupArgs struct{}

func (SessionCleanupArgs) Kind() string { return "import_session_cleanup" }
