package webassets

import (
	"embed"
)

// Embedded dashboard assets.
//
//go:embed web
var FS embed.FS
