package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJPEG encodes a simple gradient of the given size.
func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 17 % 256), G: uint8(y * 29 % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestNormalizeZeroOrientationIsUnchanged(t *testing.T) {
	data := testJPEG(t, 6, 4)

	out, err := Normalize(data, 0)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	out, err = Normalize(data, 360)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestNormalizeRotatesUpright(t *testing.T) {
	data := testJPEG(t, 6, 4)

	out, err := Normalize(data, 90)
	require.NoError(t, err)

	w, h, err := Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 6, h)

	out, err = Normalize(data, 180)
	require.NoError(t, err)
	w, h, err = Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 6, w)
	assert.Equal(t, 4, h)

	out, err = Normalize(data, 270)
	require.NoError(t, err)
	w, h, err = Dimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 6, h)
}

func TestNormalizeRejectsOddAngles(t *testing.T) {
	data := testJPEG(t, 4, 4)
	_, err := Normalize(data, 45)
	assert.Error(t, err)
}

func TestThumbnailBoundsLongestEdge(t *testing.T) {
	data := testJPEG(t, 800, 400)

	thumb, err := Thumbnail(data, 200)
	require.NoError(t, err)

	w, h, err := Dimensions(thumb)
	require.NoError(t, err)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	data := testJPEG(t, 60, 40)

	thumb, err := Thumbnail(data, 200)
	require.NoError(t, err)

	w, h, err := Dimensions(thumb)
	require.NoError(t, err)
	assert.Equal(t, 60, w)
	assert.Equal(t, 40, h)
}

func TestThumbnailDefaultEdge(t *testing.T) {
	data := testJPEG(t, 1000, 1000)

	thumb, err := Thumbnail(data, 0)
	require.NoError(t, err)

	w, h, err := Dimensions(thumb)
	require.NoError(t, err)
	assert.Equal(t, DefaultThumbnailEdge, w)
	assert.Equal(t, DefaultThumbnailEdge, h)
}
