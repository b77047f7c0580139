package connection

import (
	mb "github.com/saeidalz13/battleship-twist/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateMatch struct {
	MatchUuid string         `json:"match_uuid"`
	Mode      string         `json:"mode"`
	State     RespMatchState `json:"state"`
}

type RespShot struct {
	Outcome           mb.Outcome `json:"outcome"`
	OpponentShipCount int        `json:"opponent_ship_count"`
	Hand              []string   `json:"hand,omitempty"`
}

type RespRevealedCell struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	Cell mb.Cell `json:"cell"`
}

type RespRadar struct {
	Revealed []RespRevealedCell `json:"revealed"`
	Hand     []string           `json:"hand,omitempty"`
}

type RespPatrol struct {
	Frames    int              `json:"frames"`
	Positions []mb.Coordinates `json:"positions"`
}

// RespBoards is left out on the hand-over screen so the next player
// cannot see the previous player's fleet.
type RespBoards struct {
	Board      [mb.GridSize][mb.GridSize]mb.Cell `json:"board"`
	GuessBoard [mb.GridSize][mb.GridSize]mb.Cell `json:"guess_board"`
	Hand       []string                          `json:"hand,omitempty"`
	DeckSize   int                               `json:"deck_size"`
	Patrol     *RespPatrol                       `json:"patrol,omitempty"`
}

// RespMatchState is the view of the match from the player on screen.
// ActivePlayer and Winner are 1 or 2; Winner is 0 while the match runs.
type RespMatchState struct {
	MatchUuid         string      `json:"match_uuid"`
	Mode              string      `json:"mode"`
	State             string      `json:"state"`
	ActivePlayer      int         `json:"active_player"`
	Round             int         `json:"round"`
	PlayerActed       bool        `json:"player_acted"`
	ShipCount         int         `json:"ship_count"`
	OpponentShipCount int         `json:"opponent_ship_count"`
	Winner            int         `json:"winner"`
	Boards            *RespBoards `json:"boards,omitempty"`
}

type RespSaveMatch struct {
	Slot      string `json:"slot"`
	MatchUuid string `json:"match_uuid"`
}

type RespEndMatch struct {
	Winner int `json:"winner"`
	Rounds int `json:"rounds"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func handNames(hand []mb.ActionType) []string {
	if hand == nil {
		return nil
	}
	names := make([]string, len(hand))
	for i, card := range hand {
		names[i] = card.String()
	}
	return names
}

func NewRespShot(match *mb.Match, outcome mb.Outcome) RespShot {
	return RespShot{
		Outcome:           outcome,
		OpponentShipCount: match.Opponent().ShipCount,
		Hand:              handNames(match.ActivePlayer().Hand()),
	}
}

func NewRespRadar(match *mb.Match, revealed []mb.Coordinates) RespRadar {
	guess := match.ActivePlayer().GuessBoard
	resp := RespRadar{
		Revealed: make([]RespRevealedCell, len(revealed)),
		Hand:     handNames(match.ActivePlayer().Hand()),
	}
	for i, pos := range revealed {
		resp.Revealed[i] = RespRevealedCell{X: pos.X, Y: pos.Y, Cell: guess.At(pos.X, pos.Y)}
	}
	return resp
}

func NewRespMatchState(match *mb.Match) RespMatchState {
	player, opponent := match.ActivePlayer(), match.Opponent()

	resp := RespMatchState{
		MatchUuid:         match.Uuid(),
		Mode:              match.Mode().String(),
		State:             match.State().String(),
		ActivePlayer:      match.ActiveIndex() + 1,
		Round:             match.Round(),
		PlayerActed:       match.PlayerActed(),
		ShipCount:         player.ShipCount,
		OpponentShipCount: opponent.ShipCount,
	}
	if winner, ok := match.Winner(); ok {
		resp.Winner = winner + 1
	}
	if match.State() == mb.GameStateElse {
		return resp
	}

	resp.Boards = &RespBoards{
		Board:      player.Board.Cells,
		GuessBoard: player.GuessBoard.Cells,
		Hand:       handNames(player.Hand()),
		DeckSize:   player.DeckLen(),
	}
	if player.IsPatrolling() {
		resp.Boards.Patrol = &RespPatrol{
			Frames:    player.Cards.Patrol.Frames,
			Positions: player.PatrolShipPositions(),
		}
	}
	return resp
}

func NewRespEndMatch(match *mb.Match) RespEndMatch {
	winner, _ := match.Winner()
	return RespEndMatch{
		Winner: winner + 1,
		Rounds: match.Round(),
	}
}
