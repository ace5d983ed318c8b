// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist imports:
//  1. [ImportView] : Watch queued playlist files import with live per-track results
//  2. [ResultView] : Review totals and browse the entries that did not resolve
//  3. [FinderView] : Search the library by hand and attach a match to the playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed msg structs.
// Import events flow through the channels returned by the import coordinator, one per queued file, consumed strictly in order.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
