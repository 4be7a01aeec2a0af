package constant

import "time"

// Message kinds.
const (
	MessageKindText  = "text"
	MessageKindImage = "image"
	MessageKindFile  = "file"
)

// User roles. RoleSuperuser may delete any message regardless of authorship.
const (
	RoleMember    = "member"
	RoleSuperuser = "superuser"
)

const (
	// EditWindow is how long after creation the author may still edit a message.
	EditWindow = 5 * time.Minute

	// ThreadMaxDepth bounds the breadth-first descendant walk so malformed or
	// cyclic parent chains cannot loop forever.
	ThreadMaxDepth = 50

	// ReceiptFlushInterval is the period of the batched read-receipt broadcast.
	ReceiptFlushInterval = 2 * time.Second

	// ExpirySweepInterval is the period of the self-destruct message reaper.
	ExpirySweepInterval = 30 * time.Second

	// LinkPreviewTimeout bounds the best-effort outbound link-preview fetch.
	LinkPreviewTimeout = 5 * time.Second
)
