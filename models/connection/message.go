package connection

type NoPayload bool

// Message is the envelope of every frame in both directions. A rejected
// request comes back with its own code and Error set.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// AddErr reports err to the client. The message names the root cause so
// clients can branch on it without parsing the details.
func (m *Message[T]) AddErr(err error) {
	root := err
	for {
		var next error
		switch wrapped := root.(type) {
		case interface{ Unwrap() error }:
			next = wrapped.Unwrap()
		case interface{ Unwrap() []error }:
			if errs := wrapped.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		}
		if next == nil {
			break
		}
		root = next
	}
	m.Error = NewRespErr(err.Error(), root.Error())
}

func (m *Message[T]) HasError() bool {
	return m.Error != nil
}
