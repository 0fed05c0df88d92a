package helpers

import (
	"encoding/json"
	"log"

	"github.com/Gravitalia/forum/model"
	"github.com/nats-io/nats.go"
)

// Subjects on which forum events are published
const (
	SubjectPostCreated = "forum.post.created"
	SubjectPostLiked   = "forum.post.liked"
	SubjectPostReplied = "forum.post.replied"
	SubjectPostDeleted = "forum.post.deleted"
)

// Publisher sends forum events
type Publisher interface {
	Publish(subject string, message model.Message)
}

// Nats publishes forum events on a NATS connection,
// a nil connection drops every message
type Nats struct {
	conn *nats.Conn
}

// InitNATS starts a new NATS instance
func InitNATS(url string) *Nats {
	if url == "" {
		return &Nats{}
	}

	connection, err := nats.Connect(url, nats.Name("forum"))
	if err != nil {
		log.Printf("Cannot connect to %v: %v", url, err)
		return &Nats{}
	}

	return &Nats{conn: connection}
}

// Publish allows publishing message on NATS
func (n *Nats) Publish(subject string, message model.Message) {
	if n == nil || n.conn == nil {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("(Publish) Cannot encode message for %v: %v", subject, err)
		return
	}

	if err = n.conn.Publish(subject, data); err != nil {
		log.Printf("(Publish) Failed to send message to %v, got error: %v", subject, err)
	}
}

// Close flushes pending messages and closes the connection
func (n *Nats) Close() {
	if n == nil || n.conn == nil {
		return
	}

	if err := n.conn.Drain(); err != nil {
		log.Printf("(Close) Cannot drain NATS connection: %v", err)
	}
}
