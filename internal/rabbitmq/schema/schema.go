package schema

import "encoding/json"

const (
	KindActivationCode = "activation_code"
	KindResetCode      = "reset_code"
)

// EmailNotification is the message format for the outgoing email queue.
type EmailNotification struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (n *EmailNotification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *EmailNotification) Unmarshal(data []byte) error {
	return json.Unmarshal(data, n)
}
