// Package pipeline turns one markdown article into the pieces a publish run
// writes out.
//
// The stages work on parsed DOM trees (golang.org/x/net/html nodes):
//   - Markdown to an article fragment via Goldmark, optional front matter stripped
//   - Local reference relocation into the slug's asset directory
//   - Article page composition from the homepage template
//   - Preview card composition for the homepage feed
//
// An Article is never mutated by the composers; each works on its own deep
// copy, so one render serves both the page and the preview.
//
// File I/O and homepage persistence live in the root md2blog package and in
// internal/feed. This package only transforms trees.
package pipeline
