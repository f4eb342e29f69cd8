// Package exif extracts embedded descriptive metadata from image bytes.
// The engine consumes it through the Extractor contract and treats any
// failure as "no embedded metadata", never fatal.
package exif

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"photofolio/pkg/models"
)

// Extractor is the narrow contract the scanners consume: image bytes in,
// optional descriptive fields out.
type Extractor interface {
	Extract(data []byte) (*models.PhotoMeta, error)
}

// Reader is the default Extractor, built on goexif.
type Reader struct{}

// NewReader returns the default EXIF extractor.
func NewReader() *Reader {
	return &Reader{}
}

// Extract decodes EXIF data from data. Images without usable EXIF yield
// an error; callers treat that as absent metadata.
func (r *Reader) Extract(data []byte) (meta *models.PhotoMeta, err error) {
	// goexif can panic on truncated maker notes; a corrupt image must
	// never take down a scan.
	defer func() {
		if rec := recover(); rec != nil {
			meta, err = nil, fmt.Errorf("exif decode panic: %v", rec)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("exif decode: %w", err)
	}

	meta = &models.PhotoMeta{
		Title:       stringField(x, exif.XPTitle),
		Description: stringField(x, exif.ImageDescription),
		Author:      stringField(x, exif.Artist),
		CameraMake:  stringField(x, exif.Make),
		CameraModel: stringField(x, exif.Model),
		Exposure:    ratioField(x, exif.ExposureTime),
		Aperture:    floatField(x, exif.FNumber, "f/%.1f"),
		ISO:         intField(x, exif.ISOSpeedRatings),
		FocalLength: floatField(x, exif.FocalLength, "%.0fmm"),
		Keywords:    keywordsField(x),
	}

	if taken, err := x.DateTime(); err == nil {
		meta.DateTaken = &taken
	}
	if lat, lon, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &lon
	}

	return meta, nil
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(val, "\x00"))
}

// ratioField keeps the raw rational form, e.g. "1/250".
func ratioField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", num, den)
}

func floatField(x *exif.Exif, name exif.FieldName, format string) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return ""
	}
	return fmt.Sprintf(format, float64(num)/float64(den))
}

func intField(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	val, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return val
}

func keywordsField(x *exif.Exif) []string {
	raw := stringField(x, exif.XPKeywords)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	var keywords []string
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
