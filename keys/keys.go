package keys

import "fmt"

// Key identifies a physical key. Values are Linux input event codes so
// evdev events convert without a lookup. They match the KEY_* constants in
// github.com/holoplot/go-evdev codes.go (linux/input-event-codes.h).
type Key uint16

const (
	KeyNone       Key = 0
	KeyEsc        Key = 1
	Key1          Key = 2
	Key2          Key = 3
	Key3          Key = 4
	Key4          Key = 5
	Key5          Key = 6
	Key6          Key = 7
	Key7          Key = 8
	Key8          Key = 9
	Key9          Key = 10
	Key0          Key = 11
	KeyMinus      Key = 12
	KeyEqual      Key = 13
	KeyBackspace  Key = 14
	KeyTab        Key = 15
	KeyQ          Key = 16
	KeyW          Key = 17
	KeyE          Key = 18
	KeyR          Key = 19
	KeyT          Key = 20
	KeyY          Key = 21
	KeyU          Key = 22
	KeyI          Key = 23
	KeyO          Key = 24
	KeyP          Key = 25
	KeyLeftBrace  Key = 26
	KeyRightBrace Key = 27
	KeyEnter      Key = 28
	KeyLeftCtrl   Key = 29
	KeyA          Key = 30
	KeyS          Key = 31
	KeyD          Key = 32
	KeyF          Key = 33
	KeyG          Key = 34
	KeyH          Key = 35
	KeyJ          Key = 36
	KeyK          Key = 37
	KeyL          Key = 38
	KeySemicolon  Key = 39
	KeyApostrophe Key = 40
	KeyGrave      Key = 41
	KeyLeftShift  Key = 42
	KeyBackslash  Key = 43
	KeyZ          Key = 44
	KeyX          Key = 45
	KeyC          Key = 46
	KeyV          Key = 47
	KeyB          Key = 48
	KeyN          Key = 49
	KeyM          Key = 50
	KeyComma      Key = 51
	KeyDot        Key = 52
	KeySlash      Key = 53
	KeyRightShift Key = 54
	KeyLeftAlt    Key = 56
	KeySpace      Key = 57
	KeyCapsLock   Key = 58
	KeyF1         Key = 59
	KeyF12        Key = 88
	KeyUp         Key = 103
	KeyLeft       Key = 105
	KeyRight      Key = 106
	KeyDown       Key = 108
)

// Action is what happened to a key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Event is a single key action from an event source.
type Event struct {
	Key    Key
	Action Action
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Key, e.Action)
}

var keyNames = map[Key]string{
	KeyEsc: "esc", KeyBackspace: "backspace", KeyTab: "tab", KeyEnter: "enter",
	KeyLeftCtrl: "lctrl", KeyLeftShift: "lshift", KeyRightShift: "rshift",
	KeyLeftAlt: "lalt", KeySpace: "space", KeyCapsLock: "capslock",
	KeyUp: "up", KeyDown: "down", KeyLeft: "left", KeyRight: "right",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if r, ok := keyRunes[k]; ok {
		return string(r)
	}
	if k >= KeyF1 && k < KeyF1+10 {
		return fmt.Sprintf("f%d", k-KeyF1+1)
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// keyRunes is the unshifted character printed on each character key.
var keyRunes = map[Key]rune{
	KeyGrave: '`', Key1: '1', Key2: '2', Key3: '3', Key4: '4', Key5: '5',
	Key6: '6', Key7: '7', Key8: '8', Key9: '9', Key0: '0', KeyMinus: '-', KeyEqual: '=',
	KeyQ: 'q', KeyW: 'w', KeyE: 'e', KeyR: 'r', KeyT: 't', KeyY: 'y', KeyU: 'u',
	KeyI: 'i', KeyO: 'o', KeyP: 'p', KeyLeftBrace: '[', KeyRightBrace: ']', KeyBackslash: '\\',
	KeyA: 'a', KeyS: 's', KeyD: 'd', KeyF: 'f', KeyG: 'g', KeyH: 'h', KeyJ: 'j',
	KeyK: 'k', KeyL: 'l', KeySemicolon: ';', KeyApostrophe: '\'',
	KeyZ: 'z', KeyX: 'x', KeyC: 'c', KeyV: 'v', KeyB: 'b', KeyN: 'n', KeyM: 'm',
	KeyComma: ',', KeyDot: '.', KeySlash: '/',
	KeySpace: ' ',
}

// shifted maps a US-layout shifted character to its unshifted one.
var shifted = map[rune]rune{
	'~': '`', '!': '1', '@': '2', '#': '3', '$': '4', '%': '5', '^': '6',
	'&': '7', '*': '8', '(': '9', ')': '0', '_': '-', '+': '=',
	'{': '[', '}': ']', '|': '\\', ':': ';', '"': '\'', '<': ',', '>': '.', '?': '/',
}

var runeKeys = func() map[rune]Key {
	m := make(map[rune]Key, len(keyRunes))
	for k, r := range keyRunes {
		m[r] = k
	}
	return m
}()

// FromRune returns the key that types r on a US layout, ignoring shift.
func FromRune(r rune) (Key, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if base, ok := shifted[r]; ok {
		r = base
	}
	k, ok := runeKeys[r]
	return k, ok
}

// Rune returns the unshifted character on a key.
func (k Key) Rune() (rune, bool) {
	r, ok := keyRunes[k]
	return r, ok
}
