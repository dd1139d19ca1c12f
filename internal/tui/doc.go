// Package tui renders a running world live in the terminal.
//
// The package implements the view on the Bubble Tea framework:
//
//   - [Model]: Bubble Tea program stepping the world in real time
//   - [Canvas]: braille-based pixel canvas the bodies are drawn on
//
// # Key Bindings
//
//	Space - Pause/Resume stepping
//	R     - Reset to the initial state
//	S     - Save an SVG snapshot of the frame
//	+/-   - Double/halve the steps per frame
//	Q     - Quit
package tui
