package layout

import (
	"embed"
	"fmt"

	"github.com/hammamikhairi/tickface/internal/domain"
)

// Resource identifiers of the built-in bundle.
const (
	ResourceLayout      domain.ResourceID = "LAYOUT"
	ResourceFontAbril34 domain.ResourceID = "FONT_ABRIL_34"
	ResourceFontGothic  domain.ResourceID = "FONT_GOTHIC_18"
)

// Font faces the display knows how to draw.
const (
	FaceBlock = "block" // large five-row digits
	FacePlain = "plain" // one row of text
)

//go:embed resources/layout.json
var resources embed.FS

// Bundle holds the layouts and fonts available to a tree.
type Bundle struct {
	Layouts map[domain.ResourceID][]byte
	Fonts   map[domain.ResourceID]string // resource -> face
}

// DefaultBundle returns the bundle compiled into the binary.
func DefaultBundle() (*Bundle, error) {
	data, err := resources.ReadFile("resources/layout.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded layout: %w", err)
	}
	return &Bundle{
		Layouts: map[domain.ResourceID][]byte{
			ResourceLayout: data,
		},
		Fonts: map[domain.ResourceID]string{
			ResourceFontAbril34: FaceBlock,
			ResourceFontGothic:  FacePlain,
		},
	}, nil
}
