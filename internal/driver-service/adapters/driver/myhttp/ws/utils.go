package ws

import "github.com/google/uuid"

// newConnectionID issues the key for the presence table. A reconnect is a
// brand-new id; there is no resume protocol.
func newConnectionID() string {
	return uuid.NewString()
}
