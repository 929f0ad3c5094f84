package bedrock

import "fmt"

const renderControllerFormatVersion = "1.8.0"

// cmdProperty is the per-item tag the mapping consumer writes back onto
// translated item stacks. Render controllers key their selection on it, which
// only lines up if the mapping document publishes the same predicate value
// used here.
const cmdProperty = "packconv:custom_model_data"

// RenderControllerFile is a Bedrock render controller document.
type RenderControllerFile struct {
	FormatVersion     string                      `json:"format_version"`
	RenderControllers map[string]RenderController `json:"render_controllers"`
}

type RenderController struct {
	Geometry       string              `json:"geometry"`
	Materials      []map[string]string `json:"materials"`
	Textures       []string            `json:"textures"`
	PartVisibility []map[string]string `json:"part_visibility,omitempty"`
}

// buildRenderController emits the query-driven selector standing in for
// Java's override-by-predicate mechanism: geometry and texture come from the
// attachable's bindings, visibility is gated on the stored predicate tag.
func buildRenderController(id Identifier, cmd int) *RenderControllerFile {
	return &RenderControllerFile{
		FormatVersion: renderControllerFormatVersion,
		RenderControllers: map[string]RenderController{
			id.RenderController(): {
				Geometry:  "Geometry.default",
				Materials: []map[string]string{{"*": "Material.default"}},
				Textures:  []string{"Texture.default"},
				PartVisibility: []map[string]string{{
					"*": fmt.Sprintf("q.property('%s') == %d", cmdProperty, cmd),
				}},
			},
		},
	}
}
