package constant

const (
	// SessionTitleMaxLen bounds auto-derived session titles; longer first
	// messages are cut here and suffixed with an ellipsis.
	SessionTitleMaxLen = 50

	// ChatActivityTopic is the in-process topic exchange events go out on.
	ChatActivityTopic = "CHAT_ACTIVITY"
)
