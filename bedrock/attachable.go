package bedrock

const attachableFormatVersion = "1.10.0"

// AttachableFile binds geometry, texture, animation and render controller
// under a variant's identifier.
type AttachableFile struct {
	FormatVersion string     `json:"format_version"`
	Attachable    Attachable `json:"minecraft:attachable"`
}

type Attachable struct {
	Description AttachableDescription `json:"description"`
}

type AttachableDescription struct {
	Identifier        string            `json:"identifier"`
	Materials         map[string]string `json:"materials"`
	Textures          map[string]string `json:"textures"`
	Geometry          map[string]string `json:"geometry"`
	Animations        map[string]string `json:"animations"`
	RenderControllers []string          `json:"render_controllers"`
}

func buildAttachable(id Identifier, texturePath string) *AttachableFile {
	return &AttachableFile{
		FormatVersion: attachableFormatVersion,
		Attachable: Attachable{Description: AttachableDescription{
			Identifier: id.String(),
			Materials: map[string]string{
				"default":   "entity",
				"enchanted": "entity_emissive",
			},
			Textures: map[string]string{
				"default":   texturePath,
				"enchanted": texturePath,
			},
			Geometry:          map[string]string{"default": id.Geometry()},
			Animations:        map[string]string{"wield": id.Animation()},
			RenderControllers: []string{id.RenderController()},
		}},
	}
}
