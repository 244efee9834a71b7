// Package panel is the terminal keypad and display of the HMI node.
//
// It renders the 16x2 character display and the lockout lamp with
// lipgloss and turns key presses into keypad events through a bubbletea
// program.
package panel
