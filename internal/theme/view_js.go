//go:build js && wasm

package theme

import (
	"errors"
	"syscall/js"
)

const (
	darkClass    = "dark-mode"
	checkboxID   = "checkbox"
	iconSelector = ".theme-icon-main"
	wrapperClass = "theme-switch-wrapper"
	toggleMarkup = `<span class="theme-icon">🌙</span><label class="theme-switch" for="checkbox"><input type="checkbox" id="checkbox" /><div class="slider round"></div></label><span class="theme-icon">☀️</span>`
)

// DOMView binds a View to the page: the dark-mode class on the root
// element, the #checkbox toggle and the .theme-icon-main glyph.
type DOMView struct {
	doc      js.Value
	onChange func()
	listener js.Func
}

// NewDOMView binds to the current document
func NewDOMView() (*DOMView, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, errors.New("theme: no document")
	}
	return &DOMView{doc: doc}, nil
}

// OnChange registers fn for change events of a toggle mounted by MountToggle
func (v *DOMView) OnChange(fn func()) {
	v.onChange = fn
}

func (v *DOMView) classList() js.Value {
	return v.doc.Get("documentElement").Get("classList")
}

func (v *DOMView) Dark() bool {
	return v.classList().Call("contains", darkClass).Bool()
}

func (v *DOMView) SetDark(dark bool) {
	if dark {
		v.classList().Call("add", darkClass)
		return
	}
	v.classList().Call("remove", darkClass)
}

func (v *DOMView) Checkbox() Checkbox {
	el := v.doc.Call("getElementById", checkboxID)
	if !el.Truthy() {
		return nil
	}
	return domCheckbox{el: el}
}

func (v *DOMView) Icon() Icon {
	el := v.doc.Call("querySelector", iconSelector)
	if !el.Truthy() {
		return nil
	}
	return domIcon{el: el}
}

func (v *DOMView) HasToggle() bool {
	return v.doc.Call("querySelector", "."+wrapperClass).Truthy()
}

func (v *DOMView) MountToggle() error {
	body := v.doc.Get("body")
	if !body.Truthy() {
		return errors.New("theme: document has no body yet")
	}

	wrapper := v.doc.Call("createElement", "div")
	wrapper.Set("className", wrapperClass)
	wrapper.Set("innerHTML", toggleMarkup)
	body.Call("prepend", wrapper)

	if v.onChange != nil {
		v.listener = js.FuncOf(func(this js.Value, args []js.Value) any {
			v.onChange()
			return nil
		})
		wrapper.Call("querySelector", "#"+checkboxID).Call("addEventListener", "change", v.listener)
	}
	return nil
}

type domCheckbox struct {
	el js.Value
}

func (c domCheckbox) Checked() bool {
	return c.el.Get("checked").Bool()
}

func (c domCheckbox) SetChecked(checked bool) {
	c.el.Set("checked", checked)
}

type domIcon struct {
	el js.Value
}

func (i domIcon) SetText(text string) {
	i.el.Set("textContent", text)
}
