// Package gfx draws the globe scene with OpenGL 4.1 core. Every method must
// be called on the thread that owns the GL context.
package gfx

import (
	"fmt"
	"image"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"globe3d/internal/scene"
)

type sceneUniforms struct {
	model, view, projection     int32
	hasMap, hasBump, lit        int32
	transparent                 int32
	bumpScale, shininess        int32
	specular, ambient           int32
	sunColor, sunDir, cameraPos int32
	mapSampler, bumpSampler     int32
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer implements the scene graph backend.
type Renderer struct {
	program  uint32
	uniforms sceneUniforms

	overlayProgram uint32
	overlaySampler int32
	overlayVAO     uint32
	overlayTex     uint32
	overlaySize    image.Point
	overlayVisible bool

	meshes   map[*scene.Geometry]*gpuMesh
	textures map[scene.TextureSlot]uint32

	width, height int
}

// NewRenderer compiles the shaders and sets global GL state. The GL context
// must already be current and initialised.
func NewRenderer() (*Renderer, error) {
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("[gfx] OpenGL version", version)

	program, err := newProgram(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("gfx: scene program: %w", err)
	}
	overlayProgram, err := newProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("gfx: overlay program: %w", err)
	}

	r := &Renderer{
		program:        program,
		overlayProgram: overlayProgram,
		overlaySampler: uniform(overlayProgram, "overlay"),
		meshes:         make(map[*scene.Geometry]*gpuMesh),
		textures:       make(map[scene.TextureSlot]uint32),
	}
	r.uniforms = sceneUniforms{
		model:       uniform(program, "model"),
		view:        uniform(program, "view"),
		projection:  uniform(program, "projection"),
		hasMap:      uniform(program, "hasMap"),
		hasBump:     uniform(program, "hasBump"),
		lit:         uniform(program, "lit"),
		transparent: uniform(program, "transparent"),
		bumpScale:   uniform(program, "bumpScale"),
		shininess:   uniform(program, "shininess"),
		specular:    uniform(program, "specular"),
		ambient:     uniform(program, "ambient"),
		sunColor:    uniform(program, "sunColor"),
		sunDir:      uniform(program, "sunDir"),
		cameraPos:   uniform(program, "cameraPos"),
		mapSampler:  uniform(program, "map"),
		bumpSampler: uniform(program, "bumpMap"),
	}

	gl.GenVertexArrays(1, &r.overlayVAO)

	// Global settings
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	return r, nil
}

// Resize sets the drawable size in pixels. Zero-area sizes are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Size returns the drawable size last passed to Resize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws s from its camera, then the overlay if visible.
func (r *Renderer) Render(s *scene.Scene) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform1i(r.uniforms.mapSampler, 0)
	gl.Uniform1i(r.uniforms.bumpSampler, 1)

	view := toMat32(s.Camera.View())
	projection := toMat32(s.Camera.Projection())
	gl.UniformMatrix4fv(r.uniforms.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uniforms.projection, 1, false, &projection[0])

	cam := toVec32(s.Camera.Position)
	gl.Uniform3fv(r.uniforms.cameraPos, 1, &cam[0])
	ambient := scaled(s.Ambient.Color, s.Ambient.Intensity)
	gl.Uniform3fv(r.uniforms.ambient, 1, &ambient[0])
	sunColor := scaled(s.Sun.Color, s.Sun.Intensity)
	gl.Uniform3fv(r.uniforms.sunColor, 1, &sunColor[0])
	sunDir := sunDirection(s.Sun)
	gl.Uniform3fv(r.uniforms.sunDir, 1, &sunDir[0])

	for _, m := range s.Meshes() {
		r.drawMesh(m)
	}

	if r.overlayVisible && r.overlayTex != 0 {
		r.drawOverlay()
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	mat := m.Material
	mapTex, hasMap := r.textures[mat.Map]
	if mat.Transparent && !hasMap {
		// An untextured transparent layer would draw as an opaque shell.
		return
	}
	gm := r.mesh(m.Geometry)
	u := r.uniforms

	model := toMat32(m.Model())
	gl.UniformMatrix4fv(u.model, 1, false, &model[0])
	gl.Uniform1i(u.lit, boolInt(mat.Shading == scene.Phong))
	gl.Uniform1i(u.transparent, boolInt(mat.Transparent))
	gl.Uniform1f(u.bumpScale, mat.BumpScale)
	gl.Uniform1f(u.shininess, mat.Shininess)
	gl.Uniform3fv(u.specular, 1, &mat.Specular[0])

	gl.Uniform1i(u.hasMap, boolInt(hasMap))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, mapTex)

	bumpTex, hasBump := r.textures[mat.BumpMap]
	hasBump = hasBump && mat.BumpMap != ""
	gl.Uniform1i(u.hasBump, boolInt(hasBump))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, bumpTex)

	if mat.Side == scene.BackSide {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
	if mat.Transparent {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
	}

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.count, gl.UNSIGNED_INT, gl.PtrOffset(0))

	if mat.Transparent {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

func (r *Renderer) drawOverlay() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)

	gl.UseProgram(r.overlayProgram)
	gl.Uniform1i(r.overlaySampler, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
	gl.BindVertexArray(r.overlayVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// mesh uploads g on first use.
func (r *Renderer) mesh(g *scene.Geometry) *gpuMesh {
	if gm, ok := r.meshes[g]; ok {
		return gm
	}

	gm := &gpuMesh{count: int32(len(g.Indices))}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(scene.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	r.meshes[g] = gm
	return gm
}

// ReadPixels returns the current framebuffer. Rows are bottom-up, as GL
// stores them.
func (r *Renderer) ReadPixels() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(r.width, 1), max(r.height, 1)))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(img.Rect.Dx()), int32(img.Rect.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return img
}

// Release deletes every GL object the renderer created.
func (r *Renderer) Release() {
	for g, gm := range r.meshes {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
		delete(r.meshes, g)
	}
	for slot, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, slot)
	}
	if r.overlayTex != 0 {
		gl.DeleteTextures(1, &r.overlayTex)
		r.overlayTex = 0
		r.overlaySize = image.Point{}
	}
	if r.overlayVAO != 0 {
		gl.DeleteVertexArrays(1, &r.overlayVAO)
		r.overlayVAO = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.overlayProgram != 0 {
		gl.DeleteProgram(r.overlayProgram)
		r.overlayProgram = 0
	}
}

func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

func toVec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func scaled(c scene.Color, intensity float32) mgl32.Vec3 {
	return mgl32.Vec3{c[0] * intensity, c[1] * intensity, c[2] * intensity}
}

// sunDirection points from the origin toward the light.
func sunDirection(l scene.DirectionalLight) mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return toVec32(l.Position.Normalize())
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
