// Package appfs embeds the files the binaries need at runtime: SQL migrations,
// email templates and the common password list.
package appfs

import "embed"

//go:embed migrations assets
var FS embed.FS
