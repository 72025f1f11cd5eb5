// Package assets embeds the static files shipped with the binaries.
package assets

import "embed"

//go:embed all:templates
var Templates embed.FS
