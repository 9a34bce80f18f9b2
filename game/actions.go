package game

import "fmt"

// ActionKind discriminates the host engine's command vocabulary.
type ActionKind int

const (
	ActionWait ActionKind = iota
	ActionBeacon
	ActionLine
	ActionMessage
)

// Action is one wire command. Only the fields relevant to its kind are set.
type Action struct {
	Kind     ActionKind
	Cell     int
	Source   int
	Target   int
	Strength int
	Text     string
}

func Beacon(cell, strength int) Action {
	return Action{Kind: ActionBeacon, Cell: cell, Strength: strength}
}

func Line(source, target, strength int) Action {
	return Action{Kind: ActionLine, Source: source, Target: target, Strength: strength}
}

func Message(text string) Action {
	return Action{Kind: ActionMessage, Text: text}
}

func Wait() Action {
	return Action{Kind: ActionWait}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionBeacon:
		return fmt.Sprintf("BEACON %d %d", a.Cell, a.Strength)
	case ActionLine:
		return fmt.Sprintf("LINE %d %d %d", a.Source, a.Target, a.Strength)
	case ActionMessage:
		return fmt.Sprintf("MESSAGE %s", a.Text)
	default:
		return "WAIT"
	}
}
