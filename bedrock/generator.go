package bedrock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"path"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

// AssetSet is the generated bundle of one variant: every file it contributes
// to the output tree, keyed by tree-relative path, plus the names other files
// and the mapping document refer to.
type AssetSet struct {
	Identifier        Identifier
	TexturePath       string
	IconName          string
	FallbackAnimation bool
	Files             map[string][]byte
}

// Generator synthesizes Bedrock asset sets for resolved variants. It only
// reads immutable pack entries, so variants may be generated concurrently.
type Generator struct {
	pack *javapack.Pack
}

func NewGenerator(pack *javapack.Pack) *Generator {
	return &Generator{pack: pack}
}

// Generate builds the full asset set for one variant. Any failure is scoped
// to that variant; the caller drops it from the tree and the manifest and the
// run continues.
func (g *Generator) Generate(id Identifier, v *javapack.ResolvedVariant) (*AssetSet, error) {
	iconEntry := javapack.TexturePath(v.Icon)
	texture, err := g.pack.Entry(iconEntry)
	if err != nil {
		return nil, &javapack.UnresolvedReferenceError{Ref: v.Icon, Entry: iconEntry}
	}
	if _, err := png.DecodeConfig(bytes.NewReader(texture)); err != nil {
		return nil, fmt.Errorf("texture %s: %w", v.Icon, err)
	}

	texturePath := fmt.Sprintf("textures/%s/%s", v.Icon.Namespace, v.Icon.Path)
	set := &AssetSet{
		Identifier:  id,
		TexturePath: texturePath,
		IconName:    path.Base(v.Icon.Path),
		Files:       map[string][]byte{texturePath + ".png": texture},
	}

	anim, fallback := buildAnimation(id, v.Display)
	set.FallbackAnimation = fallback

	stem := id.fileStem()
	if err := set.addJSON("models/entity/"+stem+".geo.json", buildGeometry(id, v)); err != nil {
		return nil, err
	}
	if err := set.addJSON("animations/"+stem+".animation.json", anim); err != nil {
		return nil, err
	}
	if err := set.addJSON("attachables/"+stem+".json", buildAttachable(id, texturePath)); err != nil {
		return nil, err
	}
	if err := set.addJSON("render_controllers/"+stem+".render_controllers.json", buildRenderController(id, v.CustomModelData)); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *AssetSet) addJSON(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	s.Files[name] = append(data, '\n')
	return nil
}
