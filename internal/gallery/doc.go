// Package gallery holds the interaction state of the logo gallery: zoom
// presets, the copy-link feedback cycle, the preview modal and the
// memoised search index. All types are plain values owned by the UI
// event loop and are not safe for concurrent use.
package gallery
