package hotkey

import (
	"golang.design/x/hotkey"

	"voxkey/keys"
)

var modMap = map[keys.Named]hotkey.Modifier{
	keys.Ctrl:  hotkey.ModCtrl,
	keys.Shift: hotkey.ModShift,
	keys.Alt:   hotkey.ModOption,
	keys.Super: hotkey.ModCmd,
}
