package optim

import (
	"math"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// ClipGradNorm rescales the gradients so their joint normType-norm is at most
// maxNorm and returns the norm measured before clipping.
func ClipGradNorm(params []scalar.Scalar, maxNorm float64, normType float64) float64 {
	if maxNorm <= 0 {
		return 0
	}
	if normType <= 0 {
		normType = 2
	}
	total := 0.0
	for _, p := range params {
		if !p.Valid() {
			continue
		}
		total += math.Pow(math.Abs(p.Grad()), normType)
	}
	norm := math.Pow(total, 1.0/normType)
	if norm > maxNorm && norm > 0 {
		scale := maxNorm / norm
		for _, p := range params {
			if !p.Valid() {
				continue
			}
			p.ScaleGrad(scale)
		}
	}
	return norm
}

func ClipGradValue(params []scalar.Scalar, clipValue float64) {
	if clipValue <= 0 {
		return
	}
	for _, p := range params {
		if !p.Valid() {
			continue
		}
		p.ClipGradValue(clipValue)
	}
}
