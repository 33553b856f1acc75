package ui

import (
	"github.com/gdamore/tcell/v2"
)

// keyToken maps a terminal key event to a keypad token. The second return
// is false for keys the calculator does not bind.
func keyToken(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "=", true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "←", true
	case tcell.KeyDelete:
		return "CE", true
	case tcell.KeyRight:
		return "CHECK→", true
	case tcell.KeyLeft:
		return "CHECK←", true
	case tcell.KeyRune:
		return runeToken(ev.Rune())
	}
	return "", false
}

func runeToken(r rune) (string, bool) {
	switch r {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(r), true
	case '.', '+', '-', '*', '/', '=', '%':
		return string(r), true
	case 'q':
		return "√", true
	case 'n':
		return "+/-", true
	case 'c':
		return "C", true
	case 'C':
		return "AC", true
	case 'e':
		return "CE", true
	case 'm':
		return "M+", true
	case 'w':
		return "M-", true
	case 'r':
		return "MRC", true
	case 'g':
		return "GT", true
	case 'u':
		return "MU", true
	case 'a':
		return "AUTO", true
	case 'l':
		return "LINK", true
	}
	return "", false
}
