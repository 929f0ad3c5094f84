package bedrock

import (
	"github.com/go-gl/mathgl/mgl32"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

const geometryFormatVersion = "1.12.0"

// Geometry is a Bedrock geometry document.
type Geometry struct {
	FormatVersion string          `json:"format_version"`
	Models        []GeometryModel `json:"minecraft:geometry"`
}

type GeometryModel struct {
	Description GeometryDescription `json:"description"`
	Bones       []Bone              `json:"bones"`
}

type GeometryDescription struct {
	Identifier          string     `json:"identifier"`
	TextureWidth        int        `json:"texture_width"`
	TextureHeight       int        `json:"texture_height"`
	VisibleBoundsWidth  float64    `json:"visible_bounds_width"`
	VisibleBoundsHeight float64    `json:"visible_bounds_height"`
	VisibleBoundsOffset [3]float64 `json:"visible_bounds_offset"`
}

type Bone struct {
	Name  string     `json:"name"`
	Pivot mgl32.Vec3 `json:"pivot"`
	Cubes []Cube     `json:"cubes,omitempty"`
}

type Cube struct {
	Origin   mgl32.Vec3        `json:"origin"`
	Size     mgl32.Vec3        `json:"size"`
	UV       map[string]FaceUV `json:"uv"`
	Pivot    *mgl32.Vec3       `json:"pivot,omitempty"`
	Rotation *mgl32.Vec3       `json:"rotation,omitempty"`
}

type FaceUV struct {
	UV     [2]float32 `json:"uv"`
	UVSize [2]float32 `json:"uv_size"`
}

// buildGeometry translates the variant's custom elements 1:1, or substitutes
// a single-layer item geometry when the source model has none. A variant is
// never failed solely for missing custom geometry.
func buildGeometry(id Identifier, v *javapack.ResolvedVariant) *Geometry {
	var bones []Bone
	if len(v.Elements) > 0 {
		bone := Bone{Name: "main"}
		for _, el := range v.Elements {
			bone.Cubes = append(bone.Cubes, cubeFromElement(el))
		}
		bones = append(bones, bone)
	} else {
		bones = append(bones, defaultItemBone())
	}
	return &Geometry{
		FormatVersion: geometryFormatVersion,
		Models: []GeometryModel{{
			Description: GeometryDescription{
				Identifier:          id.Geometry(),
				TextureWidth:        v.TextureSize[0],
				TextureHeight:       v.TextureSize[1],
				VisibleBoundsWidth:  2.0,
				VisibleBoundsHeight: 2.5,
				VisibleBoundsOffset: [3]float64{0, 0.75, 0},
			},
			Bones: bones,
		}},
	}
}

// cubeFromElement maps Java element space onto Bedrock bone space: X is
// mirrored around the 8 pixel center, Z shifts by 8, Y is unchanged.
func cubeFromElement(el javapack.Element) Cube {
	cube := Cube{
		Origin: mgl32.Vec3{-el.To[0] + 8, el.From[1], el.From[2] - 8},
		Size:   el.To.Sub(el.From),
		UV:     map[string]FaceUV{},
	}
	for name, face := range el.Faces {
		if face.UV == nil {
			continue
		}
		uv := *face.UV
		cube.UV[name] = FaceUV{
			UV:     [2]float32{uv[0], uv[1]},
			UVSize: [2]float32{uv[2] - uv[0], uv[3] - uv[1]},
		}
	}
	if el.Rotation != nil {
		pivot := mgl32.Vec3{-el.Rotation.Origin[0] + 8, el.Rotation.Origin[1], el.Rotation.Origin[2] - 8}
		cube.Pivot = &pivot
		var rot mgl32.Vec3
		switch el.Rotation.Axis {
		case "x":
			rot[0] = -el.Rotation.Angle
		case "y":
			rot[1] = -el.Rotation.Angle
		case "z":
			rot[2] = el.Rotation.Angle
		}
		if rot != (mgl32.Vec3{}) {
			cube.Rotation = &rot
		}
	}
	return cube
}

// defaultItemBone is a flat 16x16x1 quad centered on the hand bone, the
// stand-in for sprite-only item models.
func defaultItemBone() Bone {
	full := FaceUV{UV: [2]float32{0, 0}, UVSize: [2]float32{16, 16}}
	return Bone{
		Name: "main",
		Cubes: []Cube{{
			Origin: mgl32.Vec3{-8, 0, -0.5},
			Size:   mgl32.Vec3{16, 16, 1},
			UV:     map[string]FaceUV{"north": full, "south": full},
		}},
	}
}
