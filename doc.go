// Package vestaboard provides a Go SDK for Vestaboard split-flap displays.
//
// A Vestaboard shows 6 rows of 22 flaps. Each flap shows one character from a
// small fixed alphabet: letters, digits, a handful of punctuation marks and
// solid color tiles. The board does not accept free text; it accepts a grid
// of character codes. Most of this package is the layout engine that turns
// text into that grid.
//
// Features
//   - Alphabet table with case folding, typographic fallbacks and {NN} code escapes
//   - Line formatting with left, right and center alignment
//   - Word wrapping and vertical padding to the 6x22 grid
//   - Strict or lenient handling of characters the board cannot show
//   - Grid validation shared by the text and raw-row paths
//   - Cloud (Read/Write API key + secret) and local-network transports
//   - Pluggable, context aware rate limiting and zap logging
//
// Formatting is pure: FormatLine, FormatText, FormatRows and Validate keep no
// state between calls and are safe for concurrent use. Non-fatal conditions
// (truncation, default centering) are reported through WithWarningHandler.
package vestaboard
