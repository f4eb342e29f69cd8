package exif

import "testing"

func TestExtractGarbage(t *testing.T) {
	r := NewReader()

	for _, data := range [][]byte{
		nil,
		[]byte("not an image at all"),
		{0xFF, 0xD8, 0xFF, 0xD9}, // bare JPEG markers, no EXIF segment
	} {
		meta, err := r.Extract(data)
		if err == nil {
			t.Errorf("Extract(%d bytes) should fail on non-EXIF input", len(data))
		}
		if meta != nil {
			t.Errorf("meta = %+v, want nil on failure", meta)
		}
	}
}

func TestExtractTruncated(t *testing.T) {
	r := NewReader()

	// A plausible-looking but truncated EXIF header must come back as an
	// error, never a panic.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10, 'E', 'x', 'i', 'f', 0x00, 0x00, 'M', 'M'}
	if _, err := r.Extract(data); err == nil {
		t.Error("truncated EXIF should fail")
	}
}
