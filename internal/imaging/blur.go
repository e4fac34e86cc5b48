package imaging

import (
	"image"
	"log"

	"gocv.io/x/gocv"
)

// gaussianBlur blurs the image with OpenCV. The radius follows the CSS
// blur() convention, where the Gaussian standard deviation is half the
// radius; the kernel size is derived from sigma by OpenCV. On conversion
// failure the original image is returned so a bad frame never loses pixels.
func gaussianBlur(src *image.NRGBA, radius float64) *image.NRGBA {
	sigma := radius / 2
	if sigma <= 0 {
		return src
	}

	m, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		log.Printf("blur: image conversion failed: %v", err)
		return src
	}
	defer m.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(m, &blurred, image.Point{}, sigma, sigma, gocv.BorderDefault)

	out, err := blurred.ToImage()
	if err != nil {
		log.Printf("blur: mat conversion failed: %v", err)
		return src
	}
	return ToNRGBA(out)
}
