package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Starts a new hot-seat match on this table. Any previous match of
	// the table is dropped.
	CodeCreateMatch

	CodeFireMissile
	CodeFireTorpedo
	CodeReinforce
	CodeRadarScan
	CodeStartPatrol
	CodePatrolMove
	CodeCancelPatrol

	// Pushed by the server when a patrol runs out of frames
	CodePatrolTimeout

	// Space bar: end the turn, or leave the hand-over screen
	CodeEndTurn
	CodeMatchState

	CodeSaveMatch
	CodeLoadMatch

	CodeEndMatch
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
