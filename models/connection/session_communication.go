package connection

// SessionMessage is a server-initiated push addressed to a session by id.
// MatchUuid ties the push to the match it was produced for; it is dropped
// if the table has moved on to another match.
type SessionMessage struct {
	PayloadType uint8
	ReceiverID  string
	MatchUuid   string
	Payload     interface{}
}

func NewSessionMessageJSON(receiverId string, matchUuid string, p interface{}) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeJSON,
		ReceiverID:  receiverId,
		MatchUuid:   matchUuid,
		Payload:     p,
	}
}

func NewSessionMessageBytes(receiverId string, matchUuid string, p []byte) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeBytes,
		ReceiverID:  receiverId,
		MatchUuid:   matchUuid,
		Payload:     p,
	}
}
