// Package theme keeps the light/dark preference in sync between a durable
// storage slot and the surfaces that show it.
//
// The transition logic in this file is pure. Controller applies it to a
// View and persists the result.
package theme

// Theme is the presentation preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// SlotKey is the durable slot holding the preference
const SlotKey = "theme"

// Resolve maps a persisted value to a theme. Anything but "dark" is light.
func Resolve(persisted string) Theme {
	if Theme(persisted) == Dark {
		return Dark
	}
	return Light
}

// FromDark returns Dark when dark is set
func FromDark(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// IsDark reports whether t is the dark theme
func (t Theme) IsDark() bool {
	return t == Dark
}

// Next returns the other theme
func (t Theme) Next() Theme {
	if t.IsDark() {
		return Light
	}
	return Dark
}

// Icon is the glyph shown for t: a moon while light, a sun while dark
func (t Theme) Icon() string {
	if t.IsDark() {
		return "☀️"
	}
	return "🌙"
}

func (t Theme) String() string {
	return string(t)
}

// Transition is a state change and whether it must be written back
type Transition struct {
	From    Theme
	To      Theme
	Persist bool
}

// Initial applies the persisted preference without writing it back
func Initial(persisted string) Transition {
	to := Resolve(persisted)
	return Transition{From: to, To: to}
}

// Toggle flips current and persists the result
func Toggle(current Theme) Transition {
	return Transition{From: current, To: current.Next(), Persist: true}
}

// Adopt takes a state the user already chose on the toggle control
func Adopt(current, chosen Theme) Transition {
	return Transition{From: current, To: chosen, Persist: true}
}
