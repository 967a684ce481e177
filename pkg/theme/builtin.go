package theme

// DefaultName is the theme used when none is requested.
const DefaultName = "default"

var builtin = map[string]Theme{
	DefaultName: {Hour: "#3b6ea5", Minute: "#8fb8de", Both: "#e4eef7"},
	"ocean":     {Hour: "#1e3a5f", Minute: "#3d7ea6", Both: "#89c2d9"},
	"forest":    {Hour: "#2d4a22", Minute: "#5b8c3a", Both: "#b5d99c"},
	"sunset":    {Hour: "#b23a48", Minute: "#f2a541", Both: "#fcd0a1"},
	"mono":      {Hour: "#222222", Minute: "#777777", Both: "#dddddd"},
	"terminal":  {Hour: "12", Minute: "10", Both: "8"},
}

// Builtin returns the themes shipped with clockblocks.
// Each call returns a fresh mapping.
func Builtin() *Themes {
	ts, err := NewThemes(builtin)
	if err != nil {
		panic("theme: invalid builtin themes: " + err.Error())
	}
	return ts
}
