package api

import (
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-twist/db"
	mb "github.com/saeidalz13/battleship-twist/models/battleship"
	mc "github.com/saeidalz13/battleship-twist/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"

	// about one frame at 60 fps
	defaultTickInterval = time.Millisecond * 16
)

var upgrader = websocket.Upgrader{

	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// a full match state fits comfortably
	ReadBufferSize:  2048,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	matchManager   mb.MatchManager
	store          db.SnapshotStore
	analytics      Analytics
	tickInterval   time.Duration
	newRand        func() *rand.Rand
}

type Option func(*RequestProcessor)

func WithSnapshotStore(store db.SnapshotStore) Option {
	return func(rp *RequestProcessor) {
		rp.store = store
	}
}

func WithAnalytics(analytics Analytics) Option {
	return func(rp *RequestProcessor) {
		rp.analytics = analytics
	}
}

func WithTickInterval(interval time.Duration) Option {
	return func(rp *RequestProcessor) {
		if interval > 0 {
			rp.tickInterval = interval
		}
	}
}

// WithRandSource sets where every new or restored match gets its random
// source from.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(rp *RequestProcessor) {
		rp.newRand = newRand
	}
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	matchManager mb.MatchManager,
	optFuncs ...Option,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		matchManager:   matchManager,
		tickInterval:   defaultTickInterval,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range optFuncs {
		opt(rp)
	}
	return rp
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// This either means an expired session or invalid session ID
			log.Println(err)
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
		}
	}
}
