// Package web embeds the static homepage and its assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var public embed.FS

// Public returns the homepage file tree rooted at public/.
func Public() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
