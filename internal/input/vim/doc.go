// Package vim provides Vim-style count prefix handling.
//
// A count typed before a command repeats it: "12H" runs the H binding
// twelve times. Counts are clamped to 1..999 and default to 1.
package vim
