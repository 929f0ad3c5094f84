package bedrock

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

const animationFormatVersion = "1.8.0"

// AnimationFile is a Bedrock animation document.
type AnimationFile struct {
	FormatVersion string               `json:"format_version"`
	Animations    map[string]Animation `json:"animations"`
}

type Animation struct {
	Loop  bool                `json:"loop"`
	Bones map[string]BoneAnim `json:"bones"`
}

type BoneAnim struct {
	Position *mgl32.Vec3 `json:"position,omitempty"`
	Rotation *mgl32.Vec3 `json:"rotation,omitempty"`
	Scale    *mgl32.Vec3 `json:"scale,omitempty"`
}

// buildAnimation converts display transforms into per-context bone
// animations. Without display data the stock wield pose stands in; the second
// return reports that substitution so callers can note it. That case is
// expected and common, not an error.
func buildAnimation(id Identifier, display map[string]javapack.DisplayTransform) (*AnimationFile, bool) {
	anim := Animation{Loop: true, Bones: map[string]BoneAnim{}}
	for ctx, tr := range display {
		bone := BoneAnim{Position: tr.Translation, Rotation: tr.Rotation, Scale: tr.Scale}
		if bone.Position == nil && bone.Rotation == nil && bone.Scale == nil {
			continue
		}
		anim.Bones[strings.ToLower(ctx)] = bone
	}
	fallback := len(anim.Bones) == 0
	if fallback {
		anim.Bones = defaultWieldBones()
	}
	return &AnimationFile{
		FormatVersion: animationFormatVersion,
		Animations:    map[string]Animation{id.Animation(): anim},
	}, fallback
}

func defaultWieldBones() map[string]BoneAnim {
	right := mgl32.Vec3{0, -90, 25}
	left := mgl32.Vec3{0, 90, -25}
	return map[string]BoneAnim{
		"thirdperson_righthand": {Rotation: &right},
		"thirdperson_lefthand":  {Rotation: &left},
		"firstperson_righthand": {Rotation: &right},
		"firstperson_lefthand":  {Rotation: &left},
	}
}
