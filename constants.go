package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteNodeConnections
	ConfirmClearConnections
	ConfirmQuit
)

const (
	// frameInterval paces drag writes, roughly one display refresh.
	frameInterval = 16 * time.Millisecond
	statusHeight  = 1
	fitPadding    = 32.0
)
