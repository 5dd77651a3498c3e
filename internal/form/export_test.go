package form

// PadImage exposes the pad's canvas to the external tests.
var PadImage = (*SignaturePad).canvasImage
