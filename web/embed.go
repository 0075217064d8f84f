// Package web ships the browser client inside the server binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// App returns the client assets rooted at the static directory.
func App() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
