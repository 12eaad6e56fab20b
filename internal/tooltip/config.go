package tooltip

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/internal/version"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the visual theme of the tooltip. It holds no layout math; the
// fixed paddings are package constants.
type Config struct {
	// Version is the library version the theme was written for.
	Version string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Library version the theme targets"`
	// BgFill is the color of the highlight band behind the hovered point.
	BgFill    string  `yaml:"bg_fill" json:"bgFill" jsonschema:"title=Band Fill,default=#2D35E0" validate:"required,hexcolor"`
	BgOpacity float64 `yaml:"bg_opacity" json:"bgOpacity" jsonschema:"title=Band Opacity,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// Fill, Stroke and Opacity style the tooltip box.
	Fill    string  `yaml:"fill" json:"fill" jsonschema:"title=Box Fill,default=#2D3E50" validate:"required,hexcolor"`
	Stroke  string  `yaml:"stroke" json:"stroke" jsonschema:"title=Box Stroke,default=#576573" validate:"required,hexcolor"`
	Opacity float64 `yaml:"opacity" json:"opacity" jsonschema:"title=Box Opacity,minimum=0,maximum=1" validate:"gte=0,lte=1"`

	FontFamily string  `yaml:"font_family" json:"fontFamily" jsonschema:"title=Font Family" validate:"required"`
	FontSize   float64 `yaml:"font_size" json:"fontSize" jsonschema:"title=Font Size,minimum=1" validate:"gt=0"`
	FontFill   string  `yaml:"font_fill" json:"fontFill" jsonschema:"title=Font Color,default=#FFFFFF" validate:"required,hexcolor"`

	// BgWidth and BgHeight fix the box size when both are set.
	BgWidth  *float64 `yaml:"bg_width,omitempty" json:"bgWidth,omitempty" jsonschema:"title=Fixed Box Width" validate:"omitempty,gt=0"`
	BgHeight *float64 `yaml:"bg_height,omitempty" json:"bgHeight,omitempty" jsonschema:"title=Fixed Box Height" validate:"omitempty,gt=0"`

	// Token1 and Token2 are shown in the canvas header row when both are set.
	Token1 *types.Token `yaml:"token1,omitempty" json:"token1,omitempty" jsonschema:"title=First Token"`
	Token2 *types.Token `yaml:"token2,omitempty" json:"token2,omitempty" jsonschema:"title=Second Token"`
}

// DefaultConfig returns the stock dark theme.
func DefaultConfig() Config {
	return Config{
		Version:    "",
		BgFill:     "#2D35E0",
		BgOpacity:  0.85,
		Fill:       "#2D3E50",
		Stroke:     "#576573",
		Opacity:    0.85,
		FontFamily: "Open Sans, Helvetica, Arial, sans-serif",
		FontSize:   12,
		FontFill:   "#FFFFFF",
		BgWidth:    nil,
		BgHeight:   nil,
		Token1:     nil,
		Token2:     nil,
	}
}

// UnmarshalJSON decodes a theme over DefaultConfig. Omitted fields keep
// their default values.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config

	decoded := plain(DefaultConfig())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*c = Config(decoded)

	return nil
}

// UnmarshalYAML decodes a theme over DefaultConfig. Omitted fields keep
// their default values.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config

	decoded := plain(DefaultConfig())
	if err := node.Decode(&decoded); err != nil {
		return err
	}

	*c = Config(decoded)

	return nil
}

// Font is the bold content font used for both drawing and measuring.
func (c Config) Font() canvas.Font {
	return canvas.Font{Family: c.FontFamily, Size: c.FontSize, Bold: true}
}

// LineHeight is the height of one content line.
func (c Config) LineHeight() float64 {
	return c.FontSize + LineSpacing
}

// BackgroundSize returns the fixed box size when both BgWidth and BgHeight are set.
func (c Config) BackgroundSize() optional.Option[types.Size] {
	if c.BgWidth == nil || c.BgHeight == nil {
		return optional.None[types.Size]()
	}

	return optional.Some(types.Size{Width: *c.BgWidth, Height: *c.BgHeight})
}

// Tokens returns the header tokens when both are configured.
func (c Config) Tokens() optional.Option[[2]types.Token] {
	if c.Token1 == nil || c.Token2 == nil {
		return optional.None[[2]types.Token]()
	}

	return optional.Some([2]types.Token{*c.Token1, *c.Token2})
}

// Validate validates the theme and its version.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid tooltip config", err)
	}

	if c.Version != "" {
		if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
			return errors.Wrap(errors.ErrCodeVersionMismatch, "tooltip theme targets an incompatible version", err)
		}
	}

	return nil
}

// ParseConfig parses a YAML theme. Missing fields keep their
// DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigLoadFailed, "failed to parse tooltip config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and parses a theme file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeConfigLoadFailed, err, "failed to read tooltip config %s", path)
	}

	return ParseConfig(data)
}

// GenerateSchema returns the JSON schema of the theme file.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(c)
	schema.Title = "tooltip-config"
	schema.Description = "Theme of the candlestick hover tooltip"

	return schema
}

// GenerateSchemaJSON returns the JSON schema as an indented string.
func (c *Config) GenerateSchemaJSON() (string, error) {
	data, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnknown, "failed to marshal tooltip config schema", err)
	}

	return string(data), nil
}
