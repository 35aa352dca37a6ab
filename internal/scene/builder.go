package scene

import "github.com/go-gl/mathgl/mgl64"

const (
	GlobeRadius  = 1.0
	CloudRadius  = 1.02
	StarsRadius  = 10.0
	CameraFOV    = 45.0
	CameraNear   = 0.1
	CameraFar    = 1000.0
	CameraStartZ = 3.0
)

// Build assembles the globe scene for a viewport of the given size.
func Build(width, height int) *Scene {
	globe := NewMesh("globe", Sphere(GlobeRadius, 64, 64), Material{
		Shading:   Phong,
		Map:       SlotMap,
		BumpMap:   SlotBump,
		BumpScale: 0.05,
		Specular:  Hex(0x333333),
		Shininess: 5,
	})

	clouds := NewMesh("clouds", Sphere(CloudRadius, 64, 64), Material{
		Shading:     Phong,
		Map:         SlotClouds,
		Shininess:   30,
		Transparent: true,
	})

	stars := NewMesh("stars", Sphere(StarsRadius, 128, 128), Material{
		Shading: Unlit,
		Map:     SlotStars,
		Side:    BackSide,
	})

	cam := NewCamera(CameraFOV, width, height, CameraNear, CameraFar)
	cam.Position = mgl64.Vec3{0, 0, CameraStartZ}

	return &Scene{
		Globe:   globe,
		Clouds:  clouds,
		Stars:   stars,
		Ambient: AmbientLight{Color: Hex(0xffffff), Intensity: 0.1},
		Sun: DirectionalLight{
			Color:     Hex(0xffffff),
			Intensity: 1,
			Position:  mgl64.Vec3{5, 3, 5},
		},
		Camera: cam,
	}
}
