package model

// Message represents how NATS publish message
// should be
type Message struct {
	Type   string `json:"type"`
	Post   string `json:"post"`
	Author string `json:"author,omitempty"`
	Likes  int64  `json:"likes,omitempty"`
}
