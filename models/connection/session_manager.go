package connection

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-twist/internal/error"
)

const defaultCleanupInterval = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	Communicate(msg SessionMessage) error
	HandleAbnormalClosureSession(session *Session, failedConn *websocket.Conn) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Count() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(interval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		if interval > 0 {
			bsm.cleanupInterval = interval
		}
	}
}

func WithGracePeriod(period time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		if period > 0 {
			bsm.gracePeriod = period
		}
	}
}

func NewBattleshipSessionManager(optFuncs ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		gracePeriod:     gracePeriod,
	}
	for _, opt := range optFuncs {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotExists(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

// TerminateSession closes the connection and forgets the session.
func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	session, prs := bsm.sessions[sessionId]
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()

	if prs && session != nil {
		session.close()
	}
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	session.reconnectionAfterAbnormalClosure(conn)
	log.Printf("session reconnected: %s\tRemote Addr: %s\n", sessionId, conn.RemoteAddr().String())
	return nil
}

// Communicate delivers a message to a session by id. Pushes that do not
// come from the table loop itself (patrol timeouts) go through here so
// they reach the current connection after a reconnect.
func (bsm *BattleshipSessionManager) Communicate(msg SessionMessage) error {
	receiverSession, err := bsm.FindSession(msg.ReceiverID)
	if err != nil {
		return err
	}
	if current := receiverSession.MatchUuid(); msg.MatchUuid != "" && current != msg.MatchUuid {
		log.Printf("dropped message for replaced match %s on session %s\n", msg.MatchUuid, msg.ReceiverID)
		return nil
	}
	return bsm.WriteToSessionConn(receiverSession, msg.Payload, msg.PayloadType)
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections,
// server session manager marks the sessions with a
// lifetime of more than the cleanup interval as stale and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		bsm.cleanupStale(time.Now())
	}
}

func (bsm *BattleshipSessionManager) cleanupStale(now time.Time) {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.RLock()
	for id, session := range bsm.sessions {
		if now.Sub(session.createdAt) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}
	bsm.mu.RUnlock()

	if len(toDelete) == 0 {
		return
	}
	log.Println("Clean up sessions:")
	for _, id := range toDelete {
		bsm.TerminateSession(id)
		log.Printf("removed: %s", id)
	}
}

// HandleAbnormalClosureSession waits for the client to come back with its
// session id. failedConn is the connection that broke; if it has already
// been swapped out the reconnection happened before we got here.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session, failedConn *websocket.Conn) error {
	signal := s.reconnectionSignal()
	if s.Conn() != failedConn {
		return nil
	}

	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Printf("session terminated: %s\n", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-signal:
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	conn := session.Conn()
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	switch ConnErrCode(err) {
	case ConnLoopAbnormalClosureRetry:
		// The read side owns the grace period; writing again after a
		// reconnection is enough here.
		if err := bsm.HandleAbnormalClosureSession(session, conn); err != nil {
			return err
		}
		return session.writeToConnWithRetry(msg, msgType)

	default:
		return err
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		conn := session.Conn()
		messageType, payload, err := conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}
		// reconnected while this read was blocked on the old conn
		if session.Conn() != conn {
			retries = 0
			continue
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session, conn); err != nil {
				return -1, []byte{}, err
			}
			retries = 0

		default:
			return -1, []byte{}, err
		}
	}
}

// FetchCodeFromMsg reads only the code of an incoming frame.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
