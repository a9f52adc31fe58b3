// Package terminal is a single-screen, hot-seat front-end built on termbox.
//
// The board is drawn with tile 1 in the bottom-left corner and tile 100 in the
// top-right, rows running left to right. Snake heads are marked S and ladder
// feet L; each player's piece is their seat number.
//
// Keys: Space or Enter rolls for the active player, r starts a new game once
// somebody has won, q or Esc quits.
package terminal
