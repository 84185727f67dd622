package badge

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	width  = 360
	height = 96
)

var (
	bannedColor = color.RGBA{R: 0xFF, A: 0xFF}
	cleanColor  = color.RGBA{G: 0xC8, A: 0xFF}
)

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// AttachmentURL is the embed image URL referencing the uploaded file.
func (i Image) AttachmentURL() string {
	return "attachment://" + i.Name
}

func (i Image) File() *discordgo.File {
	return &discordgo.File{Name: i.Name, ContentType: i.ContentType, Reader: bytes.NewReader(i.Data)}
}

type Provider struct {
	dir    string
	logger *zap.Logger
}

func NewProvider(dir string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{dir: dir, logger: logger}
}

// For returns banned.gif or notbanned.gif from the assets directory, or a
// rendered PNG panel when the file cannot be read.
func (p *Provider) For(banned bool) (Image, error) {
	name, caption, bg := "notbanned", "NOT BANNED", cleanColor
	if banned {
		name, caption, bg = "banned", "BANNED", bannedColor
	}

	data, err := os.ReadFile(filepath.Join(p.dir, name+".gif"))
	if err == nil {
		return Image{Name: name + ".gif", ContentType: "image/gif", Data: data}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("badge asset unreadable", zap.String("dir", p.dir), zap.String("name", name), zap.Error(err))
	}

	rendered, err := Render(caption, bg)
	if err != nil {
		return Image{}, err
	}
	return Image{Name: name + ".png", ContentType: "image/png", Data: rendered}, nil
}

// Render draws caption centred in white on a solid panel and encodes it as PNG.
func Render(caption string, bg color.Color) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}
	textWidth := drawer.MeasureString(caption).Ceil()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	drawer.Dot = fixed.P((width-textWidth)/2, (height+textHeight)/2-metrics.Descent.Ceil())
	drawer.DrawString(caption)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
