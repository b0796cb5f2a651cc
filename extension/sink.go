package extension

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/godot-bridge/ffi"
)

// hostCore forwards warnings and errors to the host's print functions so
// they show up in the editor's output panel. Entries are dropped while no
// table is loaded.
type hostCore struct {
	zapcore.LevelEnabler
	enc   zapcore.Encoder
	table func() *ffi.Table
}

func newHostCore(table func() *ffi.Table) zapcore.Core {
	return &hostCore{
		LevelEnabler: zapcore.WarnLevel,
		enc:          zapcore.NewJSONEncoder(zapcore.EncoderConfig{}),
		table:        table,
	}
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &hostCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		table:        c.table,
	}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	t := c.table()
	if t == nil {
		return nil
	}
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSpace(buf.String())
	buf.Free()

	fn, file, line := ent.Caller.Function, ent.Caller.File, int32(ent.Caller.Line)
	isError := ent.Level >= zapcore.ErrorLevel
	switch {
	case msg == "{}" && isError:
		t.PrintError(ent.Message, fn, file, line, false)
	case msg == "{}":
		t.PrintWarning(ent.Message, fn, file, line, false)
	case isError:
		t.PrintErrorWithMessage(ent.Message, msg, fn, file, line, false)
	default:
		t.PrintWarningWithMessage(ent.Message, msg, fn, file, line, false)
	}
	return nil
}

func (c *hostCore) Sync() error {
	return nil
}
