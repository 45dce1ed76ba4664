// Package vault provides a filesystem-backed implementation of the
// NoteStore port. It watches a note vault directory with fsnotify and
// translates filesystem events into note change events.
//
// Editors save files in bursts, so raw write events are debounced per
// file before a change is delivered. Hidden files and directories are
// ignored, as are files that are not recognised note formats.
package vault
