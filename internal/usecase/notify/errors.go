package notify

import "errors"

var (
	// ErrChannelDisabled is returned by Send on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidChange is returned when a change has no stream attached.
	ErrInvalidChange = errors.New("invalid status change")
)
