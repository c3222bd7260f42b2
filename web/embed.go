// Package web carries the HTML templates and browser assets compiled into the
// binary.
package web

import "embed"

// Templates holds layouts, partials and pages.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the stylesheet and the form script served under /static/.
//
//go:embed static/**/*
var Static embed.FS
