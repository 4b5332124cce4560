package ocr

import (
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const receiptWhitelist = "0123456789RpIDRidrJumlahTransferTotalBayarNominal.,:()/- "

// runOCRPasses produces normalized text variants of the receipt: the original
// image, a cleaned grayscale version, and a digits-only pass that recovers
// amounts the mixed pass mangles.
func runOCRPasses(path string) ([]string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}

	cleaned := path
	if tmp, err := os.CreateTemp("", "receipt-*.png"); err == nil {
		_ = tmp.Close()
		if imaging.Save(gray, tmp.Name()) == nil {
			cleaned = tmp.Name()
			defer os.Remove(cleaned)
		}
	}

	var texts []string
	for _, pass := range []struct {
		image     string
		whitelist string
	}{
		{path, ""},
		{cleaned, receiptWhitelist},
		{cleaned, "0123456789., "},
	} {
		client := gosseract.NewClient()
		_ = client.SetLanguage("eng")
		if pass.whitelist != "" {
			_ = client.SetWhitelist(pass.whitelist)
		}
		_ = client.SetImage(pass.image)
		text, err := client.Text()
		client.Close()
		if err != nil {
			continue
		}
		texts = append(texts, normalizeOCRText(text))
	}
	if len(texts) == 0 {
		return nil, ErrUnreadable
	}
	return texts, nil
}
