package lifecycle

import (
	"fmt"

	"github.com/wippyai/godot-bridge/errors"
)

// Level is a GDExtension initialization level. Lower levels are more
// foundational: the host initializes in ascending order and deinitializes
// in descending order.
type Level int32

const (
	LevelCore Level = iota
	LevelServers
	LevelScene
	LevelEditor

	levelCount
)

var levelNames = [...]string{"core", "servers", "scene", "editor"}

func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// Valid reports whether l is one of the four host levels.
func (l Level) Valid() bool {
	return l >= LevelCore && l < levelCount
}

// Levels returns every level in initialization order.
func Levels() []Level {
	return []Level{LevelCore, LevelServers, LevelScene, LevelEditor}
}

// ParseLevel validates a raw level received from the host.
func ParseLevel(raw int64) (Level, error) {
	l := Level(raw)
	if int64(l) != raw || !l.Valid() {
		return 0, errors.InvalidLevel(raw)
	}
	return l, nil
}

// LevelByName maps "core", "servers", "scene" or "editor" to its Level.
func LevelByName(name string) (Level, error) {
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return 0, errors.New(errors.PhaseLifecycle, errors.KindInvalidLevel).
		Value(name).
		Detail("unknown initialization level %q", name).
		Build()
}
