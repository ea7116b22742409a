package theme

import "sync"

// Checkbox is the boolean toggle control. Checked means dark.
type Checkbox interface {
	Checked() bool
	SetChecked(bool)
}

// Icon shows the theme glyph
type Icon interface {
	SetText(string)
}

// View is where a theme is shown. Checkbox and Icon return nil when the
// surface does not exist.
type View interface {
	// Dark reports the document-wide dark flag
	Dark() bool
	SetDark(bool)
	Checkbox() Checkbox
	Icon() Icon
	// HasToggle reports whether the toggle control is already mounted
	HasToggle() bool
	// MountToggle adds an unchecked toggle control
	MountToggle() error
}

// apply shows t on every surface of v
func apply(v View, t Theme) {
	v.SetDark(t.IsDark())
	if cb := v.Checkbox(); cb != nil {
		cb.SetChecked(t.IsDark())
	}
	if icon := v.Icon(); icon != nil {
		icon.SetText(t.Icon())
	}
}

// MemoryView is a headless View for tests and terminals
type MemoryView struct {
	mu       sync.Mutex
	dark     bool
	checkbox *memoryCheckbox
	icon     *memoryIcon
}

type memoryCheckbox struct {
	mu      *sync.Mutex
	checked bool
}

func (c *memoryCheckbox) Checked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked
}

func (c *memoryCheckbox) SetChecked(checked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = checked
}

type memoryIcon struct {
	mu   *sync.Mutex
	text string
}

func (i *memoryIcon) SetText(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.text = text
}

// ViewOption configures a MemoryView
type ViewOption func(*MemoryView)

// WithIcon gives the view an icon surface
func WithIcon() ViewOption {
	return func(v *MemoryView) {
		v.icon = &memoryIcon{mu: &v.mu}
	}
}

// WithToggle starts the view with a mounted toggle control
func WithToggle(checked bool) ViewOption {
	return func(v *MemoryView) {
		v.checkbox = &memoryCheckbox{mu: &v.mu, checked: checked}
	}
}

// NewMemoryView creates a view with only the document flag unless options
// add surfaces
func NewMemoryView(opts ...ViewOption) *MemoryView {
	v := &MemoryView{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *MemoryView) Dark() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dark
}

func (v *MemoryView) SetDark(dark bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dark = dark
}

func (v *MemoryView) Checkbox() Checkbox {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.checkbox == nil {
		return nil
	}
	return v.checkbox
}

func (v *MemoryView) Icon() Icon {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.icon == nil {
		return nil
	}
	return v.icon
}

func (v *MemoryView) HasToggle() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checkbox != nil
}

func (v *MemoryView) MountToggle() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.checkbox == nil {
		v.checkbox = &memoryCheckbox{mu: &v.mu}
	}
	return nil
}

// IconText returns the glyph currently shown, or "" without an icon
func (v *MemoryView) IconText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.icon == nil {
		return ""
	}
	return v.icon.text
}

// Click flips the toggle control the way a user would, without notifying
// anyone. Callers follow up with Controller.Changed.
func (v *MemoryView) Click() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.checkbox != nil {
		v.checkbox.checked = !v.checkbox.checked
	}
}
