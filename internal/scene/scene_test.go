package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSphereVerticesLieOnRadius(t *testing.T) {
	g := Sphere(2.5, 16, 8)

	if got, want := g.VertexCount(), 17*9; got != want {
		t.Fatalf("expected %d vertices, got %d", want, got)
	}
	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertices[i*FloatsPerVertex:]
		r := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
		if math.Abs(r-2.5) > 1e-5 {
			t.Fatalf("vertex %d at radius %v", i, r)
		}
		n := math.Sqrt(float64(v[3]*v[3] + v[4]*v[4] + v[5]*v[5]))
		if math.Abs(n-1) > 1e-5 {
			t.Fatalf("normal %d has length %v", i, n)
		}
		if v[6] < 0 || v[6] > 1 || v[7] < 0 || v[7] > 1 {
			t.Fatalf("uv %d out of range: (%v, %v)", i, v[6], v[7])
		}
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	g := Sphere(1, 64, 64)

	if len(g.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(g.Indices))
	}
	// Two triangles per quad, minus one per quad on each pole row.
	if want := 64*64*6 - 2*64*3; len(g.Indices) != want {
		t.Fatalf("expected %d indices, got %d", want, len(g.Indices))
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Indices {
		if idx >= n {
			t.Fatalf("index %d = %d out of range %d", i, idx, n)
		}
	}
}

func TestSphereTrianglesFaceOutward(t *testing.T) {
	g := Sphere(1, 12, 6)
	pos := func(i uint32) mgl64.Vec3 {
		v := g.Vertices[int(i)*FloatsPerVertex:]
		return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	}
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := pos(g.Indices[i]), pos(g.Indices[i+1]), pos(g.Indices[i+2])
		normal := b.Sub(a).Cross(c.Sub(a))
		centre := a.Add(b).Add(c).Mul(1.0 / 3)
		if normal.Dot(centre) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
	}
}

func TestSetAspectIgnoresZeroArea(t *testing.T) {
	cam := NewCamera(45, 800, 400, 0.1, 100)
	if cam.Aspect != 2 {
		t.Fatalf("expected aspect 2, got %v", cam.Aspect)
	}

	for _, size := range [][2]int{{0, 400}, {800, 0}, {0, 0}} {
		if cam.SetAspect(size[0], size[1]) {
			t.Errorf("SetAspect(%d, %d) reported a change", size[0], size[1])
		}
	}
	if cam.Aspect != 2 {
		t.Fatalf("aspect changed by zero-area resize: %v", cam.Aspect)
	}
}

func TestWorldAxisRotationIgnoresLocalFrame(t *testing.T) {
	m := NewMesh("m", nil, Material{})
	m.RotateOnLocalAxis(mgl64.Vec3{1, 0, 0}, math.Pi/2)
	m.RotateOnWorldAxis(mgl64.Vec3{0, 1, 0}, math.Pi/2)

	// Local +Z was tipped to world -Y, which a world Y turn leaves alone.
	got := m.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
	if !vecNear(got, mgl64.Vec3{0, -1, 0}) {
		t.Fatalf("expected local +Z at world -Y, got %v", got)
	}

	// Local +X still lies in the horizontal plane and turns with world Y.
	got = m.Orientation.Rotate(mgl64.Vec3{1, 0, 0})
	if !vecNear(got, mgl64.Vec3{0, 0, -1}) {
		t.Fatalf("expected local +X at world -Z, got %v", got)
	}
}

// vecNear compares componentwise with an absolute tolerance, so zero
// components accept rounding noise.
func vecNear(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestVecNearAcceptsRoundingAtZero(t *testing.T) {
	if !vecNear(mgl64.Vec3{2.220446049250313e-16, -1, 0}, mgl64.Vec3{0, -1, 0}) {
		t.Fatal("rounding noise on a zero component rejected")
	}
	if vecNear(mgl64.Vec3{1e-6, -1, 0}, mgl64.Vec3{0, -1, 0}) {
		t.Fatal("real error accepted")
	}
}

func TestBuildLayout(t *testing.T) {
	s := Build(1280, 720)

	if s.Globe.Material.BumpMap != SlotBump || s.Globe.Material.Map != SlotMap {
		t.Errorf("globe material slots: %+v", s.Globe.Material)
	}
	if !s.Clouds.Material.Transparent {
		t.Error("cloud layer must be transparent")
	}
	if s.Stars.Material.Side != BackSide || s.Stars.Material.Shading != Unlit {
		t.Errorf("starfield should be an unlit back-side sphere: %+v", s.Stars.Material)
	}
	if s.Camera.Position != (mgl64.Vec3{0, 0, CameraStartZ}) {
		t.Errorf("camera starts at %v", s.Camera.Position)
	}
	if math.Abs(s.Camera.Distance()-CameraStartZ) > 1e-12 {
		t.Errorf("camera distance %v", s.Camera.Distance())
	}

	order := s.Meshes()
	if order[0] != s.Stars || order[2] != s.Clouds {
		t.Error("transparent clouds must draw last")
	}
	if len(Slots()) != 4 {
		t.Errorf("expected 4 texture slots, got %d", len(Slots()))
	}
	if Hex(0x333333)[0] != float32(0x33)/255 {
		t.Errorf("Hex decoded %v", Hex(0x333333))
	}
}
