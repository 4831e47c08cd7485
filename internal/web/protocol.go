// Package web serves the board to browser clients over websockets. Each
// connection gets its own engine, gravity timer and outbound queue.
package web

import (
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Message types sent by the server.
const (
	TypeHello  = "hello"
	TypeCells  = "cells"
	TypeScore  = "score"
	TypeStatus = "status"
)

// TypeStart is the client message that (re)starts a game. The other client
// types are engine command names: left, right, down, rotate.
const TypeStart = "start"

// ClientMessage is a decoded client frame.
type ClientMessage struct {
	Type string `json:"type"`
}

// Cell is one changed board cell. Kind is the piece tag, empty when the
// cell was cleared.
type Cell struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
}

// ServerMessage is an outbound frame. Only the fields of its Type are set.
type ServerMessage struct {
	Type string `json:"type"`

	// hello
	Session string `json:"session,omitempty"`
	Player  string `json:"player,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`

	// cells
	Cells []Cell `json:"cells,omitempty"`
	Full  bool   `json:"full,omitempty"` // cells holds the whole board

	// score
	Score     *int `json:"score,omitempty"`
	HighScore *int `json:"highScore,omitempty"`

	// status
	Status string `json:"status,omitempty"`
}

func helloMessage(s *Session) ServerMessage {
	return ServerMessage{
		Type:    TypeHello,
		Session: s.ID(),
		Player:  s.Player(),
		Width:   engine.Width,
		Height:  engine.Height,
	}
}

func cellsMessage(changes []engine.CellChange) ServerMessage {
	cells := make([]Cell, len(changes))
	for i, c := range changes {
		cells[i] = Cell{Index: c.Index, Kind: c.Kind.String()}
	}
	return ServerMessage{Type: TypeCells, Cells: cells}
}

// fullBoardMessage lists every cell of g.
func fullBoardMessage(g engine.Grid) ServerMessage {
	cells := make([]Cell, len(g))
	for i, k := range g {
		cells[i] = Cell{Index: i, Kind: k.String()}
	}
	return ServerMessage{Type: TypeCells, Cells: cells, Full: true}
}

func scoreMessage(score, high int) ServerMessage {
	return ServerMessage{Type: TypeScore, Score: &score, HighScore: &high}
}

func statusMessage(status engine.Status) ServerMessage {
	return ServerMessage{Type: TypeStatus, Status: status.String()}
}
