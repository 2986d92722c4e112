package model

// Swatch is a named color preset shown in the properties panel.
type Swatch struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Palette is the ordered list of color presets.
type Palette struct {
	Swatches []Swatch `yaml:"swatches" json:"swatches"`
}

// DefaultPalette returns the built-in presets.
func DefaultPalette() Palette {
	return Palette{Swatches: []Swatch{
		{Name: "red", Color: "#ef4444"},
		{Name: "orange", Color: "#f97316"},
		{Name: "amber", Color: "#f59e0b"},
		{Name: "lime", Color: "#84cc16"},
		{Name: "green", Color: "#22c55e"},
		{Name: "cyan", Color: "#06b6d4"},
		{Name: "blue", Color: "#3b82f6"},
		{Name: "indigo", Color: "#6366f1"},
		{Name: "violet", Color: "#8b5cf6"},
		{Name: "fuchsia", Color: "#d946ef"},
		{Name: "rose", Color: "#f43f5e"},
		{Name: "white", Color: "#ffffff"},
		{Name: "gray", Color: "#9ca3af"},
		{Name: "slate", Color: "#4b5563"},
		{Name: "black", Color: "#000000"},
	}}
}

// Valid returns the palette with unparseable swatches dropped.
func (p Palette) Valid() Palette {
	out := Palette{Swatches: make([]Swatch, 0, len(p.Swatches))}
	for _, s := range p.Swatches {
		if ValidHexColor(s.Color) {
			out.Swatches = append(out.Swatches, s)
		}
	}
	return out
}

// Colors returns the hex strings in order.
func (p Palette) Colors() []string {
	cs := make([]string, len(p.Swatches))
	for i, s := range p.Swatches {
		cs[i] = s.Color
	}
	return cs
}
