package handler

type ContextKey string

var (
	SubCtxKey      ContextKey = "sub"
	OrganizerCtx   ContextKey = "organizer"
	PollCtx        ContextKey = "poll"
	ParticipantCtx ContextKey = "participant"
)
