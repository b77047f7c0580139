package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/saeidalz13/battleship-twist/db"
	cerr "github.com/saeidalz13/battleship-twist/internal/error"
	mb "github.com/saeidalz13/battleship-twist/models/battleship"
	mc "github.com/saeidalz13/battleship-twist/models/connection"
)

// Request is one incoming frame. Every handler answers with the code it
// was called for; a rejected intent comes back with Error set and the
// match unchanged.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func decodePayload[T any](payload []byte) (T, error) {
	var req mc.Message[T]
	if err := json.Unmarshal(payload, &req); err != nil {
		return req.Payload, cerr.ErrPayload(err)
	}
	return req.Payload, nil
}

func (r Request) HandleCreateMatch(mm mb.MatchManager, optFuncs ...mb.MatchOption) (*mb.Match, mc.Message[mc.RespCreateMatch]) {
	resp := mc.NewMessage[mc.RespCreateMatch](mc.CodeCreateMatch)

	reqCreate, err := decodePayload[mc.ReqCreateMatch](r.payload)
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}

	match, err := mm.CreateMatch(mb.Mode(reqCreate.Mode), optFuncs...)
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateMatch{
		MatchUuid: match.Uuid(),
		Mode:      match.Mode().String(),
		State:     mc.NewRespMatchState(match),
	})
	return match, resp
}

func (r Request) HandleFireMissile(match *mb.Match) mc.Message[mc.RespShot] {
	resp := mc.NewMessage[mc.RespShot](mc.CodeFireMissile)
	if match == nil {
		resp.AddErr(cerr.ErrNoActiveMatch)
		return resp
	}

	coords, err := decodePayload[mc.ReqCoordinates](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	outcome, err := match.FireMissile(coords.X, coords.Y)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	resp.AddPayload(mc.NewRespShot(match, outcome))
	return resp
}

func (r Request) HandleFireTorpedo(match *mb.Match) mc.Message[mc.RespShot] {
	resp := mc.NewMessage[mc.RespShot](mc.CodeFireTorpedo)
	if match == nil {
		resp.AddErr(cerr.ErrNoActiveMatch)
		return resp
	}

	reqColumn, err := decodePayload[mc.ReqColumn](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	outcome, err := match.FireTorpedo(reqColumn.Column)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	resp.AddPayload(mc.NewRespShot(match, outcome))
	return resp
}

func (r Request) HandleRadarScan(match *mb.Match) mc.Message[mc.RespRadar] {
	resp := mc.NewMessage[mc.RespRadar](mc.CodeRadarScan)
	if match == nil {
		resp.AddErr(cerr.ErrNoActiveMatch)
		return resp
	}

	coords, err := decodePayload[mc.ReqCoordinates](r.payload)
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	revealed, err := match.RadarScan(coords.X, coords.Y)
	if err != nil {
		resp.AddErr(err)
		return resp
	}
	resp.AddPayload(mc.NewRespRadar(match, revealed))
	return resp
}

// handleStateChange runs an intent that answers with the updated view of
// the match.
func handleStateChange(code uint8, match *mb.Match, intent func() error) mc.Message[mc.RespMatchState] {
	resp := mc.NewMessage[mc.RespMatchState](code)
	if match == nil {
		resp.AddErr(cerr.ErrNoActiveMatch)
		return resp
	}
	if err := intent(); err != nil {
		resp.AddErr(err)
		return resp
	}
	resp.AddPayload(mc.NewRespMatchState(match))
	return resp
}

func (r Request) HandleReinforce(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodeReinforce, match, func() error {
		coords, err := decodePayload[mc.ReqCoordinates](r.payload)
		if err != nil {
			return err
		}
		return match.Reinforce(coords.X, coords.Y)
	})
}

func (r Request) HandleStartPatrol(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodeStartPatrol, match, func() error {
		coords, err := decodePayload[mc.ReqCoordinates](r.payload)
		if err != nil {
			return err
		}
		return match.StartPatrol(coords.X, coords.Y)
	})
}

func (r Request) HandlePatrolMove(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodePatrolMove, match, func() error {
		direction, err := decodePayload[mc.ReqDirection](r.payload)
		if err != nil {
			return err
		}
		return match.PatrolMove(direction.DX, direction.DY)
	})
}

func (r Request) HandleCancelPatrol(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodeCancelPatrol, match, func() error {
		return match.CancelPatrol()
	})
}

func (r Request) HandleEndTurn(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodeEndTurn, match, func() error {
		return match.EndTurn()
	})
}

func (r Request) HandleMatchState(match *mb.Match) mc.Message[mc.RespMatchState] {
	return handleStateChange(mc.CodeMatchState, match, func() error {
		return nil
	})
}

func (r Request) HandleSaveMatch(ctx context.Context, store db.SnapshotStore, match *mb.Match) mc.Message[mc.RespSaveMatch] {
	resp := mc.NewMessage[mc.RespSaveMatch](mc.CodeSaveMatch)
	if match == nil {
		resp.AddErr(cerr.ErrNoActiveMatch)
		return resp
	}
	if store == nil {
		resp.AddErr(cerr.ErrNoSnapshotStore)
		return resp
	}

	slot, err := r.slot()
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	data, err := mb.EncodeSnapshot(match.Snapshot())
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	err = store.SaveSnapshot(ctx, db.SavedMatch{
		Slot:      slot,
		MatchUuid: match.Uuid(),
		Mode:      match.Mode().String(),
		Round:     match.Round(),
		Data:      data,
		SavedAt:   time.Now(),
	})
	if err != nil {
		resp.AddErr(err)
		return resp
	}

	resp.AddPayload(mc.RespSaveMatch{Slot: slot, MatchUuid: match.Uuid()})
	return resp
}

// HandleLoadMatch restores a saved match and registers it. current is the
// match the table is leaving; a saved uuid held by another table gets a
// fresh one.
func (r Request) HandleLoadMatch(
	ctx context.Context,
	store db.SnapshotStore,
	mm mb.MatchManager,
	current *mb.Match,
	optFuncs ...mb.MatchOption,
) (*mb.Match, mc.Message[mc.RespMatchState]) {
	resp := mc.NewMessage[mc.RespMatchState](mc.CodeLoadMatch)
	if store == nil {
		resp.AddErr(cerr.ErrNoSnapshotStore)
		return nil, resp
	}

	slot, err := r.slot()
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}

	saved, err := store.LoadSnapshot(ctx, slot)
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}

	snapshot, err := mb.DecodeSnapshot(saved.Data)
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}

	if existing, err := mm.GetMatch(snapshot.Uuid); err == nil && existing != current {
		optFuncs = append(optFuncs, mb.WithUuid(uuid.NewString()[:6]))
	}

	match, err := mb.RestoreMatch(snapshot, optFuncs...)
	if err != nil {
		resp.AddErr(err)
		return nil, resp
	}
	mm.AddMatch(match)

	resp.AddPayload(mc.NewRespMatchState(match))
	return match, resp
}

func (r Request) slot() (string, error) {
	reqSlot := mc.ReqSlot{}
	if len(r.payload) != 0 {
		var err error
		reqSlot, err = decodePayload[mc.ReqSlot](r.payload)
		if err != nil {
			return "", err
		}
	}
	return db.NormalizeSlot(reqSlot.Slot)
}
