package api

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/saeidalz13/battleship-twist/db/sqlc"
	mb "github.com/saeidalz13/battleship-twist/models/battleship"
	mc "github.com/saeidalz13/battleship-twist/models/connection"
)

// table is the hot-seat match driven by one session. The read loop and
// the patrol ticker both touch the match, always under mu.
type table struct {
	mu      sync.Mutex
	session *mc.Session
	match   *mb.Match
}

func (t *table) currentMatch() *mb.Match {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.match
}

// replaceMatch swaps the table's match and returns the uuid of the one
// that should be dropped from the match manager, if any.
func (t *table) replaceMatch(match *mb.Match) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var stale string
	if t.match != nil && t.match.Uuid() != match.Uuid() {
		stale = t.match.Uuid()
	}
	t.match = match
	t.session.SetMatchUuid(match.Uuid())
	return stale
}

// tick advances the patrol countdown. When a patrol runs out it returns
// the timeout push for the player on screen.
func (t *table) tick() (mc.SessionMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.match == nil || !t.match.Tick() {
		return mc.SessionMessage{}, false
	}
	msg := mc.NewMessage[mc.RespMatchState](mc.CodePatrolTimeout)
	msg.AddPayload(mc.NewRespMatchState(t.match))
	return mc.NewSessionMessageJSON(t.session.Id(), t.match.Uuid(), msg), true
}

func (rp *RequestProcessor) runPatrolTicker(t *table, done <-chan struct{}) {
	ticker := time.NewTicker(rp.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			push, timedOut := t.tick()
			if !timedOut {
				continue
			}
			if err := rp.sessionManager.Communicate(push); err != nil {
				log.Println(err)
			}
		}
	}
}

func (rp *RequestProcessor) dropMatch(matchUuid string) {
	if matchUuid != "" {
		rp.matchManager.TerminateMatch(matchUuid)
	}
}

// incomingSignal tells a frame without a code apart from code 0.
type incomingSignal struct {
	Code *uint8 `json:"code"`
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionId = session.Id()
		t         = &table{session: session}
		done      = make(chan struct{})
	)

	defer func() {
		close(done)
		if match := t.currentMatch(); match != nil {
			rp.matchManager.TerminateMatch(match.Uuid())
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	serverInet, err := serverIpNet(session.Conn().LocalAddr().String())
	if err != nil {
		log.Println("failed to extract server ip:", err)
	}

	go rp.runPatrolTicker(t, done)

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// the connection could not be recovered
			break sessionLoop
		}

		var signal incomingSignal
		if err := json.Unmarshal(payload, &signal); err != nil || signal.Code == nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)
		var respMsg interface{}

		switch *signal.Code {
		case mc.CodeCreateMatch:
			rp.countMatchCreated(serverInet)

			t.mu.Lock()
			match, msg := req.HandleCreateMatch(rp.matchManager, mb.WithRand(rp.newRand()))
			t.mu.Unlock()
			if match != nil {
				rp.dropMatch(t.replaceMatch(match))
			}
			respMsg = msg

		case mc.CodeFireMissile, mc.CodeFireTorpedo:
			t.mu.Lock()
			var msg mc.Message[mc.RespShot]
			if *signal.Code == mc.CodeFireMissile {
				msg = req.HandleFireMissile(t.match)
			} else {
				msg = req.HandleFireTorpedo(t.match)
			}
			var endMsg *mc.Message[mc.RespEndMatch]
			if !msg.HasError() && t.match.IsOver() {
				end := mc.NewMessage[mc.RespEndMatch](mc.CodeEndMatch)
				end.AddPayload(mc.NewRespEndMatch(t.match))
				endMsg = &end
			}
			t.mu.Unlock()

			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if endMsg != nil {
				respMsg = *endMsg
			}

		case mc.CodeRadarScan:
			t.mu.Lock()
			respMsg = req.HandleRadarScan(t.match)
			t.mu.Unlock()

		case mc.CodeReinforce:
			t.mu.Lock()
			respMsg = req.HandleReinforce(t.match)
			t.mu.Unlock()

		case mc.CodeStartPatrol:
			t.mu.Lock()
			respMsg = req.HandleStartPatrol(t.match)
			t.mu.Unlock()

		case mc.CodePatrolMove:
			t.mu.Lock()
			respMsg = req.HandlePatrolMove(t.match)
			t.mu.Unlock()

		case mc.CodeCancelPatrol:
			t.mu.Lock()
			respMsg = req.HandleCancelPatrol(t.match)
			t.mu.Unlock()

		case mc.CodeEndTurn:
			t.mu.Lock()
			respMsg = req.HandleEndTurn(t.match)
			t.mu.Unlock()

		case mc.CodeMatchState:
			t.mu.Lock()
			respMsg = req.HandleMatchState(t.match)
			t.mu.Unlock()

		case mc.CodeSaveMatch:
			ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
			t.mu.Lock()
			msg := req.HandleSaveMatch(ctx, rp.store, t.match)
			t.mu.Unlock()
			cancel()

			if !msg.HasError() {
				rp.countMatchSaved(serverInet)
			}
			respMsg = msg

		case mc.CodeLoadMatch:
			ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
			t.mu.Lock()
			match, msg := req.HandleLoadMatch(ctx, rp.store, rp.matchManager, t.match, mb.WithRand(rp.newRand()))
			t.mu.Unlock()
			cancel()

			if match != nil {
				rp.dropMatch(t.replaceMatch(match))
			}
			respMsg = msg

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			respMsg = respInvalidSignal
		}

		if respMsg == nil {
			continue sessionLoop
		}
		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}
