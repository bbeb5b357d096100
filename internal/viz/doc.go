// Package viz draws flames in the terminal.
//
//   - [Preview]: half-block color preview of a flame; every character cell
//     shows two grid rows, the upper one as foreground of "▀" and the lower
//     one as background
//   - [Canvas]: Braille sub-pixel canvas used for the transformation view
//   - [TransformationView]: arrows showing how each affine map moves the
//     unit axes, with one transformation highlighted
//   - Themes and styles shared with the editor
package viz
