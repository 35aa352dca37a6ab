// Package scene holds the static globe scene graph: three textured spheres,
// two lights and a perspective camera.
package scene

import "github.com/go-gl/mathgl/mgl64"

// TextureSlot names one of the textures the scene samples.
type TextureSlot string

const (
	SlotMap    TextureSlot = "map"
	SlotBump   TextureSlot = "bump"
	SlotClouds TextureSlot = "clouds"
	SlotStars  TextureSlot = "stars"
)

// Slots lists every texture the scene needs, in load order.
func Slots() []TextureSlot {
	return []TextureSlot{SlotMap, SlotBump, SlotClouds, SlotStars}
}

// Color is linear RGB in [0, 1].
type Color [3]float32

// Hex converts 0xRRGGBB to a Color.
func Hex(rgb uint32) Color {
	return Color{
		float32(rgb>>16&0xff) / 255,
		float32(rgb>>8&0xff) / 255,
		float32(rgb&0xff) / 255,
	}
}

type Shading int

const (
	// Phong is lit with ambient + directional light and a specular term.
	Phong Shading = iota
	// Unlit samples the map directly.
	Unlit
)

type Side int

const (
	FrontSide Side = iota
	BackSide
)

type Material struct {
	Shading     Shading
	Map         TextureSlot
	BumpMap     TextureSlot // empty when the material has no bump map
	BumpScale   float32
	Specular    Color
	Shininess   float32
	Transparent bool
	Side        Side
}

// Mesh is a geometry placed in the world by an orientation.
type Mesh struct {
	Name        string
	Geometry    *Geometry
	Material    Material
	Orientation mgl64.Quat
}

// NewMesh returns a mesh with the identity orientation.
func NewMesh(name string, g *Geometry, m Material) *Mesh {
	return &Mesh{
		Name:        name,
		Geometry:    g,
		Material:    m,
		Orientation: mgl64.QuatIdent(),
	}
}

// RotateOnWorldAxis rotates the mesh about a fixed world axis.
func (m *Mesh) RotateOnWorldAxis(axis mgl64.Vec3, angle float64) {
	m.Orientation = mgl64.QuatRotate(angle, axis).Mul(m.Orientation).Normalize()
}

// RotateOnLocalAxis rotates the mesh about one of its own axes.
func (m *Mesh) RotateOnLocalAxis(axis mgl64.Vec3, angle float64) {
	m.Orientation = m.Orientation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
}

// Model returns the model matrix.
func (m *Mesh) Model() mgl64.Mat4 {
	return m.Orientation.Mat4()
}

type AmbientLight struct {
	Color     Color
	Intensity float32
}

type DirectionalLight struct {
	Color     Color
	Intensity float32
	Position  mgl64.Vec3 // shines from here toward the origin
}

// Scene is the globe scene graph. Meshes draw in the order Stars, Globe,
// Clouds so the transparent cloud layer blends over the surface.
type Scene struct {
	Globe   *Mesh
	Clouds  *Mesh
	Stars   *Mesh
	Ambient AmbientLight
	Sun     DirectionalLight
	Camera  *Camera
}

// Meshes returns the meshes in draw order.
func (s *Scene) Meshes() []*Mesh {
	return []*Mesh{s.Stars, s.Globe, s.Clouds}
}
