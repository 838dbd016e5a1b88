// Package web holds the embedded admin templates and public static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static pages
var assets embed.FS

// Templates returns the HTML template tree.
func Templates() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the public asset tree served under /assets/.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Pages returns the built-in demo pages used when no pages dir is configured.
func Pages() fs.FS {
	sub, err := fs.Sub(assets, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}
