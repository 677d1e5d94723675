package npc

import "errors"

var (
	ErrNilConfig        = errors.New("npc: nil tree config")
	ErrEmptyRoot        = errors.New("npc: tree root is required")
	ErrUnknownNode      = errors.New("npc: unknown node")
	ErrUnknownAction    = errors.New("npc: unknown action")
	ErrUnknownCondition = errors.New("npc: unknown condition")
	ErrUnsupportedType  = errors.New("npc: unsupported node type")
	ErrCycle            = errors.New("npc: cycle in tree config")
)
