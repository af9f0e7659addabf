// Package shaders embeds the GLSL sources used by the renderer.
package shaders

import "embed"

//go:embed *.vert *.frag
var FS embed.FS
