// Package token defines the calculator's input vocabulary and classifies
// raw key tokens into typed values for the transition engine.
//
// The vocabulary is the fixed set of keys on an electronic adding machine:
//
//   - Digits: "0".."9" plus the multi-zero shortcuts "00" and "000"
//   - Decimal point: "."
//   - Operators: "+", "-", "×", "÷" (ASCII "*" and "/" are aliases)
//   - Completion: "=" and "ENTER"
//   - Specials: the clear family ("ON/C", "AC", "C", "CE"), backspace "←",
//     sign toggle "+/-", memory keys ("MU", "M+", "M-", "MRC", "GT"),
//     "%", "√", the tape controls ("AUTO", "CHECK→", "CHECK←"), and "LINK"
//
// Classification is total: every string maps to exactly one Token or to
// ErrUnknownToken. Tokens are case-sensitive, matching the physical keypad.
package token
