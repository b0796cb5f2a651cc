package ffi

/*
#include "bridge.h"
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/godot-bridge/errors"
)

// LevelHandler receives the host's initialize and deinitialize calls.
// library is the userdata written by FillInitialization.
type LevelHandler func(library unsafe.Pointer, level int32, initialize bool)

var (
	handlerMu sync.RWMutex
	handler   LevelHandler
)

// HandleLevels installs the receiver of initialization callbacks, replacing
// any previous one. A nil handler drops events.
func HandleLevels(h LevelHandler) {
	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()
}

// FillInitialization writes the C callbacks, the minimum level and userdata
// into the host's GDExtensionInitialization record.
func FillInitialization(record unsafe.Pointer, minLevel int32, userdata unsafe.Pointer) error {
	if record == nil {
		return errors.NilPointer(errors.PhaseLoad, []string{"r_initialization"}, "GDExtensionInitialization")
	}
	C.gdx_fill_initialization(record, C.GDExtensionInitializationLevel(minLevel), userdata)
	return nil
}

//export gdxOnLevel
func gdxOnLevel(userdata unsafe.Pointer, level C.int32_t, initialize C.uint8_t) {
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()

	if h == nil {
		Logger().Warn("initialization event without handler",
			zap.Int32("level", int32(level)),
			zap.Bool("initialize", initialize != 0))
		return
	}
	h(userdata, int32(level), initialize != 0)
}
