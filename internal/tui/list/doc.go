// Package listview provides a scrolling picker for Bubble Tea screens.
//
// Only the rows inside the viewport are rendered, and the cursor is kept
// visible as it moves. Navigation keys are bubbles/key bindings so screens
// can show them in their help line.
package listview
