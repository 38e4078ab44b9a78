package web

import "embed"

// FS contains the stylesheet and images served under /static.
// The patterns are relative to this file's directory (the 'web' directory).
//
//go:embed static/*
var FS embed.FS
