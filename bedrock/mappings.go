package bedrock

import (
	"encoding/json"

	"golang.org/x/exp/slices"
)

// MappingEntry is one converted variant as published to the mapping consumer.
type MappingEntry struct {
	Name            string `json:"name"`
	CustomModelData int    `json:"custom_model_data"`
	Icon            string `json:"icon"`
}

// MappingDocument maps base item ids to their converted variants. Marshalling
// sorts the base item keys; entry order within a group is fixed by Document.
type MappingDocument map[string][]MappingEntry

// ManifestBuilder folds generated variants into one mapping document per
// pack. Building never fails.
type ManifestBuilder struct {
	doc MappingDocument
}

func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{doc: MappingDocument{}}
}

// Add records a successfully generated variant under its base item.
func (b *ManifestBuilder) Add(baseItem string, cmd int, set *AssetSet) {
	b.doc[baseItem] = append(b.doc[baseItem], MappingEntry{
		Name:            set.Identifier.Slug,
		CustomModelData: cmd,
		Icon:            set.IconName,
	})
}

// Document returns the mapping document with ascending predicate order within
// each base item group.
func (b *ManifestBuilder) Document() MappingDocument {
	for _, entries := range b.doc {
		slices.SortStableFunc(entries, func(a, b MappingEntry) int {
			return a.CustomModelData - b.CustomModelData
		})
	}
	return b.doc
}

// Encode renders the document as stable, sorted-key JSON.
func (b *ManifestBuilder) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b.Document(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
