package conv

// Events published on the converter's bus while a pack converts. Subscribe
// with eventbus.Subscribe before calling Convert; the engine never reads them
// back.

type VariantConvertedEvent struct {
	Pack            string
	BaseItem        string
	CustomModelData int
	Identifier      string
}

type VariantSkippedEvent struct {
	Pack       string
	Diagnostic Diagnostic
}

type PackConvertedEvent struct {
	Pack      string
	Converted int64
	Skipped   int64
}
