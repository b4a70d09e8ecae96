// Package ui implements terminal interfaces using bubbletea's Elm architecture.
//
// Two models are provided:
//  1. [ImportModel] : a live progress bar for bulk channel imports, driven by
//     the engine's ProgressUpdate channel
//  2. [BrowseModel] : a two-level browser over the local catalog
//     ([ChannelListView] then [VideoListView])
//
// Both implement bubbletea's standard Init/Update/View pattern. Progress
// updates flow through a channel from the sync engine, providing non-blocking
// status reporting during imports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
