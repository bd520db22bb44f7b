package cache

import "fmt"

type Prefix string

const (
	// InboxSeen marks gateway message ids the relay has already stored.
	InboxSeen Prefix = "inbox_seen"
	// Balance holds the last balance read from the gateway.
	Balance Prefix = "balance"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
