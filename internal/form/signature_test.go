package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inspection-report/internal/form"
)

func TestSignaturePad_StrokeProducesPNG(t *testing.T) {
	pad := form.NewSignaturePad(form.DefaultPadWidth, form.DefaultPadHeight)
	assert.True(t, pad.ShowPlaceholder())

	pad.Begin(form.Point{X: 10, Y: 10})
	pad.Move(form.Point{X: 60, Y: 40})
	pad.Move(form.Point{X: 120, Y: 40})
	art, err := pad.End()
	require.NoError(t, err)

	assert.False(t, pad.ShowPlaceholder())
	assert.Equal(t, art, pad.Artifact())

	mime, img := decodeDataURL(t, art)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, form.DefaultPadWidth, img.Bounds().Dx())
	assert.Equal(t, form.DefaultPadHeight, img.Bounds().Dy())

	_, _, _, a := img.At(90, 40).RGBA()
	assert.NotZero(t, a, "segment pixels are painted")
	_, _, _, a = img.At(300, 120).RGBA()
	assert.Zero(t, a, "untouched pixels stay transparent")
}

func TestSignaturePad_ClearDiscardsArtifact(t *testing.T) {
	pad := form.NewSignaturePad(50, 50)
	pad.Begin(form.Point{X: 5, Y: 5})
	_, err := pad.End()
	require.NoError(t, err)

	pad.Clear()
	assert.Empty(t, pad.Artifact())
	assert.True(t, pad.ShowPlaceholder())
	_, _, _, a := form.PadImage(pad).At(5, 5).RGBA()
	assert.Zero(t, a)
}

func TestSignaturePad_MoveWithoutBeginIgnored(t *testing.T) {
	pad := form.NewSignaturePad(50, 50)
	pad.Move(form.Point{X: 40, Y: 40})

	art, err := pad.End()
	require.NoError(t, err)
	assert.Empty(t, art)
}

func TestSigner_ModeSwitchKeepsArtifacts(t *testing.T) {
	s := form.NewSigner()
	s.Pad.Begin(form.Point{X: 20, Y: 20})
	drawn, err := s.Pad.End()
	require.NoError(t, err)

	require.NoError(t, s.LoadStamp(pngBytes(t, 220, 90)))
	assert.Equal(t, drawn, s.Effective())

	require.NoError(t, s.SetMode(form.ModeStamp))
	assert.Equal(t, s.Stamp(), s.Effective())

	_, img := decodeDataURL(t, s.Stamp())
	assert.Equal(t, 110, img.Bounds().Dx())
	assert.Equal(t, 45, img.Bounds().Dy())

	require.NoError(t, s.SetMode(form.ModeDraw))
	assert.Equal(t, drawn, s.Effective())

	assert.Error(t, s.SetMode("ink"))
}

func TestSigner_LoadStampRejectsGarbage(t *testing.T) {
	s := form.NewSigner()
	err := s.LoadStamp([]byte("nope"))
	assert.ErrorIs(t, err, form.ErrUnsupportedImage)
	assert.Empty(t, s.Stamp())
}
