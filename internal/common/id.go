package common

import (
	"github.com/google/uuid"
)

// NewMessageID generates a synthetic message ID for archive entries lacking
// a usable Message-ID header. Format: msg_<uuid>.
func NewMessageID() string {
	return "msg_" + uuid.New().String()
}
