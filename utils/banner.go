// utils/banner.go
package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	bannerWidth  = 1200
	bannerHeight = 630
)

func bannerFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// GenerateWelcomeBanner renders the welcome image sent over WhatsApp after
// signup and writes it as a PNG under dir. The caller is responsible for
// deleting the file once it has been sent.
func GenerateWelcomeBanner(name, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create banner directory: %w", err)
	}

	dc := gg.NewContext(bannerWidth, bannerHeight)

	// WhatsApp-green backdrop with soft highlight circles
	dc.SetHexColor("#075E54")
	dc.Clear()
	dc.SetRGBA(1, 1, 1, 0.06)
	dc.DrawCircle(120, 90, 220)
	dc.Fill()
	dc.DrawCircle(bannerWidth-100, bannerHeight-80, 260)
	dc.Fill()

	titleFace, err := bannerFace(gobold.TTF, 72)
	if err != nil {
		return "", fmt.Errorf("failed to load banner font: %w", err)
	}
	defer titleFace.Close()
	bodyFace, err := bannerFace(goregular.TTF, 40)
	if err != nil {
		return "", fmt.Errorf("failed to load banner font: %w", err)
	}
	defer bodyFace.Close()

	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(fmt.Sprintf("Welcome to %s!", ProjectName()), bannerWidth/2, bannerHeight/2-70, 0.5, 0.5)
	dc.SetFontFace(bodyFace)
	dc.DrawStringAnchored(fmt.Sprintf("Hi %s, your account is ready.", name), bannerWidth/2, bannerHeight/2+20, 0.5, 0.5)
	dc.DrawStringAnchored("Shop & sell on WhatsApp.", bannerWidth/2, bannerHeight/2+90, 0.5, 0.5)

	path := filepath.Join(dir, fmt.Sprintf("welcome-%s.png", uuid.NewString()))
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to save banner: %w", err)
	}
	return path, nil
}
