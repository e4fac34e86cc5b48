package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// ExportFilename is the suggested name for exported rasters.
const ExportFilename = "edited-image.png"

// EncodePNG encodes the image losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes the image to the writer.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// WritePDF embeds the flattened image into a single-page PDF sized to the
// image at 96 DPI, so the page matches what was on screen.
func WritePDF(w io.Writer, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	b := img.Bounds()
	const dpi = 96.0
	wMM := float64(b.Dx()) / dpi * 25.4
	hMM := float64(b.Dy()) / dpi * 25.4

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: wMM, Ht: hMM},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("edited", opts, bytes.NewReader(data))
	pdf.ImageOptions("edited", 0, 0, wMM, hMM, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf output: %w", err)
	}
	return nil
}
