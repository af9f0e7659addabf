package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Framebuffer is an offscreen render target with a sampled color texture and
// a depth renderbuffer
type Framebuffer struct {
	ID           uint32
	ColorTexture uint32
	depth        uint32
	width        int32
	height       int32
}

// NewFramebuffer allocates a complete render target of the given size
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{}
	gl.GenFramebuffers(1, &fb.ID)
	gl.GenTextures(1, &fb.ColorTexture)
	gl.GenRenderbuffers(1, &fb.depth)

	if err := fb.Resize(width, height); err != nil {
		fb.Delete()
		return nil, err
	}
	return fb, nil
}

// Resize reallocates the attachments. Sizes below one pixel are raised to one.
func (fb *Framebuffer) Resize(width, height int) error {
	fb.width = int32(max(width, 1))
	fb.height = int32(max(height, 1))

	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.ID)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.ColorTexture, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}
	return nil
}

// Bind directs drawing into the framebuffer and sets the viewport to cover it
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.ID)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// BindTexture binds the color attachment to the given texture unit
func (fb *Framebuffer) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTexture)
}

// Size returns the attachment size in pixels
func (fb *Framebuffer) Size() (width, height int) {
	return int(fb.width), int(fb.height)
}

// Delete releases all GL objects
func (fb *Framebuffer) Delete() {
	gl.DeleteFramebuffers(1, &fb.ID)
	gl.DeleteTextures(1, &fb.ColorTexture)
	gl.DeleteRenderbuffers(1, &fb.depth)
}
