package connection

import (
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	gracePeriod       time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one browser tab driving one table. The table loop is the
// only reader; the patrol ticker writes concurrently, so every write and
// every swap of conn goes through mu.
type Session struct {
	id                     string
	matchUuid              string
	conn                   *websocket.Conn
	reconnectionSignalChan chan struct{}
	createdAt              time.Time
	mu                     sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// MatchUuid is the match currently on the table, empty if none.
func (s *Session) MatchUuid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchUuid
}

func (s *Session) SetMatchUuid(matchUuid string) {
	s.mu.Lock()
	s.matchUuid = matchUuid
	s.mu.Unlock()
}

func (s *Session) reconnectionSignal() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconnectionSignalChan
}

func (s *Session) remoteAddr() string {
	conn := s.Conn()
	if conn == nil {
		return "<nil>"
	}
	return conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Browser tab suspended or network dropped; the client may come back
	// with its session id.
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	// Binary frames, invalid UTF-8 or oversized payloads: most likely not
	// our client, so the session ends.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

func (s *Session) writeOnce(msg interface{}, msgType uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msgType {
	case MessageTypeJSON:
		return s.conn.WriteJSON(msg)

	case MessageTypeBytes:
		respBytes, ok := msg.([]byte)
		if !ok {
			return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
		}
		return s.conn.WriteMessage(websocket.TextMessage, respBytes)

	default:
		return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
	}
}

// Writes to the connection of that session, retrying with backoff on
// temporary failures. The returned error is always a ConnErr.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

	for {
		err := s.writeOnce(msg, msgType)
		if err == nil {
			return nil
		}

		var connErr ConnErr
		if errors.As(err, &connErr) {
			return connErr
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries >= maxWriteWsRetries {
				log.Printf("max retries reached for writing to ws [%s]: %s", s.remoteAddr(), err)
				return NewConnErr(ConnLoopBreak).AddDesc(err.Error())
			}
			retries++
			log.Printf("writing to ws [%s] failed; retrying... (retry no. %d)\n", s.remoteAddr(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).AddDesc(err.Error())

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// Decides what the read loop does after a failed read.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries >= maxWriteWsRetries {
			return ConnLoopBreak
		}
		log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.remoteAddr(), retries+1)
		time.Sleep(time.Duration((retries+1)*backOffFactor) * time.Second)
		return ConnLoopContinue

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.remoteAddr(), err)
		return ConnLoopBreak
	}
}

// Swaps in the new connection and wakes up the loop waiting in its
// grace period.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	close(s.reconnectionSignalChan)
	s.reconnectionSignalChan = make(chan struct{})
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

var _ ConnectionHandler = (*Session)(nil)
