package gfx

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"globe3d/internal/scene"
)

// UploadTexture stores img for slot with a full mip chain, replacing any
// previous texture in that slot. Equirectangular maps repeat horizontally
// and clamp at the poles.
func (r *Renderer) UploadTexture(slot scene.TextureSlot, img *image.NRGBA) error {
	if img == nil || img.Rect.Empty() {
		return fmt.Errorf("gfx: empty texture for %s", slot)
	}
	if old, ok := r.textures[slot]; ok {
		gl.DeleteTextures(1, &old)
	}

	tex := upload(img.Rect.Dx(), img.Rect.Dy(), img.Pix, gl.REPEAT, gl.CLAMP_TO_EDGE, true)
	if tex == 0 {
		return fmt.Errorf("gfx: create texture for %s", slot)
	}
	r.textures[slot] = tex
	return nil
}

// SetOverlay replaces the overlay image and shows it. The texture is
// reallocated only when the image size changes.
func (r *Renderer) SetOverlay(img *image.RGBA) {
	size := img.Rect.Size()
	if overlayNeedsAlloc(r.overlayTex, r.overlaySize, size) {
		if r.overlayTex != 0 {
			gl.DeleteTextures(1, &r.overlayTex)
		}
		r.overlayTex = upload(size.X, size.Y, img.Pix, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, false)
		r.overlaySize = size
	} else {
		gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	r.overlayVisible = true
}

func overlayNeedsAlloc(tex uint32, have, want image.Point) bool {
	return tex == 0 || have != want
}

// HideOverlay stops drawing the overlay and frees its texture.
func (r *Renderer) HideOverlay() {
	r.overlayVisible = false
	if r.overlayTex != 0 {
		gl.DeleteTextures(1, &r.overlayTex)
		r.overlayTex = 0
		r.overlaySize = image.Point{}
	}
}

// OverlayVisible reports whether the overlay is drawn.
func (r *Renderer) OverlayVisible() bool {
	return r.overlayVisible
}

func upload(width, height int, pix []byte, wrapS, wrapT int32, mipmaps bool) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
