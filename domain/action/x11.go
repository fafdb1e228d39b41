package action

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"

	"github.com/lyind/loopgrab/domain/game"
)

const keysymSpace = 0x0020

// XControls injects input through the XTEST extension. It implements the
// control sink contract; failures are logged here and never propagated to
// the engine.
type XControls struct {
	logger *slog.Logger
	conn   *xgb.Conn
	root   xproto.Window
	space  xproto.Keycode
}

// Connect opens a display connection, initializes XTEST and resolves the
// keycode carrying the space keysym.
func Connect(logger *slog.Logger) (*XControls, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("action: open display: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("action: XTEST extension: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	space, err := lookupKeycode(conn, setup, keysymSpace)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &XControls{logger: logger, conn: conn, root: root, space: space}, nil
}

// lookupKeycode scans the keyboard mapping for the first keycode bound to
// the given keysym.
func lookupKeycode(conn *xgb.Conn, setup *xproto.SetupInfo, sym xproto.Keysym) (xproto.Keycode, error) {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return 0, fmt.Errorf("action: keyboard mapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	for i, ks := range reply.Keysyms {
		if ks == sym {
			return setup.MinKeycode + xproto.Keycode(i/per), nil
		}
	}
	return 0, fmt.Errorf("action: keysym %#x not mapped", sym)
}

// Close releases the display connection.
func (c *XControls) Close() { c.conn.Close() }

func (c *XControls) fakeInput(typ byte, detail byte) {
	err := xtest.FakeInputChecked(c.conn, typ, detail, xproto.TimeCurrentTime, c.root, 0, 0, 0).Check()
	if err != nil && c.logger != nil {
		c.logger.Error("fake input", "type", typ, "detail", detail, "error", err)
	}
}

// Fire simulates a single space key press and release.
func (c *XControls) Fire() {
	c.fakeInput(xproto.KeyPress, byte(c.space))
	c.fakeInput(xproto.KeyRelease, byte(c.space))
}

// Move warps the pointer to absolute root coordinates without clicking.
func (c *XControls) Move(x, y int) {
	err := xproto.WarpPointerChecked(c.conn, xproto.WindowNone, c.root, 0, 0, 0, 0, int16(x), int16(y)).Check()
	if err != nil && c.logger != nil {
		c.logger.Error("warp pointer", "x", x, "y", y, "error", err)
	}
}

// Click moves the pointer and simulates a full left button press/release.
func (c *XControls) Click(x, y int) {
	c.Move(x, y)
	c.fakeInput(xproto.ButtonPress, 1)
	time.Sleep(10 * time.Millisecond)
	c.fakeInput(xproto.ButtonRelease, 1)
}

// Focus moves the pointer to (x, y) and assigns input focus to the window
// found under it.
func (c *XControls) Focus(x, y int) {
	c.Move(x, y)
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		if c.logger != nil {
			c.logger.Error("query pointer", "error", err)
		}
		return
	}
	if reply.Child == xproto.WindowNone {
		return
	}
	err = xproto.SetInputFocusChecked(c.conn, xproto.InputFocusNone, reply.Child, xproto.TimeCurrentTime).Check()
	if err != nil && c.logger != nil {
		c.logger.Error("set input focus", "error", err)
	}
}

var _ game.Controls = (*XControls)(nil)
