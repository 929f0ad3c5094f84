package javapack

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelNode is one Java model file in typed form. Model files are validated
// here, at the pack-entry boundary, so malformed input fails in one place
// instead of surfacing as missing keys during generation.
type ModelNode struct {
	ID          Reference
	Parent      *Reference
	Textures    map[string]string
	Display     map[string]DisplayTransform
	Elements    []Element
	TextureSize [2]int
}

// DisplayTransform mirrors one context entry of a model's display block. Nil
// fields were absent in the source.
type DisplayTransform struct {
	Rotation    *mgl32.Vec3
	Translation *mgl32.Vec3
	Scale       *mgl32.Vec3
}

// Element is one cuboid of a model's custom geometry, in Java model space.
type Element struct {
	From     mgl32.Vec3
	To       mgl32.Vec3
	Faces    map[string]Face
	Rotation *ElementRotation
}

type Face struct {
	UV      *[4]float32
	Texture string
}

type ElementRotation struct {
	Origin mgl32.Vec3
	Axis   string
	Angle  float32
}

type rawModel struct {
	Parent      string                  `json:"parent"`
	Textures    map[string]string       `json:"textures"`
	Display     map[string]rawTransform `json:"display"`
	Elements    []rawElement            `json:"elements"`
	TextureSize []int                   `json:"texture_size"`
}

type rawTransform struct {
	Rotation    []float32 `json:"rotation"`
	Translation []float32 `json:"translation"`
	Scale       []float32 `json:"scale"`
}

type rawElement struct {
	From     []float32          `json:"from"`
	To       []float32          `json:"to"`
	Faces    map[string]rawFace `json:"faces"`
	Rotation *rawRotation       `json:"rotation"`
}

type rawFace struct {
	UV      []float32 `json:"uv"`
	Texture string    `json:"texture"`
}

type rawRotation struct {
	Origin []float32 `json:"origin"`
	Axis   string    `json:"axis"`
	Angle  float32   `json:"angle"`
}

// DecodeModel parses and validates one model entry.
func DecodeModel(id Reference, data []byte) (*ModelNode, error) {
	var raw rawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}
	node := &ModelNode{
		ID:          id,
		Textures:    raw.Textures,
		TextureSize: [2]int{16, 16},
	}
	if node.Textures == nil {
		node.Textures = map[string]string{}
	}
	if raw.Parent != "" {
		ref, err := ParseReference(raw.Parent, id.Namespace)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", id, err)
		}
		node.Parent = &ref
	}
	if len(raw.TextureSize) == 2 {
		node.TextureSize = [2]int{raw.TextureSize[0], raw.TextureSize[1]}
	}
	if len(raw.Display) > 0 {
		node.Display = map[string]DisplayTransform{}
		for ctx, tr := range raw.Display {
			node.Display[ctx] = DisplayTransform{
				Rotation:    vec3(tr.Rotation),
				Translation: vec3(tr.Translation),
				Scale:       vec3(tr.Scale),
			}
		}
	}
	for i, el := range raw.Elements {
		if len(el.From) != 3 || len(el.To) != 3 {
			return nil, fmt.Errorf("model %s: element %d has no valid from/to", id, i)
		}
		elem := Element{
			From:  mgl32.Vec3{el.From[0], el.From[1], el.From[2]},
			To:    mgl32.Vec3{el.To[0], el.To[1], el.To[2]},
			Faces: map[string]Face{},
		}
		for name, f := range el.Faces {
			face := Face{Texture: f.Texture}
			if len(f.UV) == 4 {
				face.UV = &[4]float32{f.UV[0], f.UV[1], f.UV[2], f.UV[3]}
			}
			elem.Faces[name] = face
		}
		if el.Rotation != nil {
			origin := mgl32.Vec3{8, 8, 8}
			if v := vec3(el.Rotation.Origin); v != nil {
				origin = *v
			}
			elem.Rotation = &ElementRotation{
				Origin: origin,
				Axis:   el.Rotation.Axis,
				Angle:  el.Rotation.Angle,
			}
		}
		node.Elements = append(node.Elements, elem)
	}
	return node, nil
}

func vec3(v []float32) *mgl32.Vec3 {
	if len(v) != 3 {
		return nil
	}
	return &mgl32.Vec3{v[0], v[1], v[2]}
}
