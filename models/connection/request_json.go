package connection

type ReqCreateMatch struct {
	Mode uint8 `json:"mode"`
}

// Used by missile, radar scan, reinforce and start patrol.
type ReqCoordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ReqColumn struct {
	Column int `json:"column"`
}

type ReqDirection struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// An empty slot means the default save.
type ReqSlot struct {
	Slot string `json:"slot"`
}
