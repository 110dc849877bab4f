package ui

// FocusManager tracks and rotates focus across the fields of a form.
// An empty Current means no field has focus.
type FocusManager struct {
	Current  string   // ID of the currently focused field
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewFocusManager creates a manager over order with the first field focused.
func NewFocusManager(order []string, onChange func(from, to string)) *FocusManager {
	f := &FocusManager{Order: order, OnChange: onChange}
	if len(order) > 0 {
		f.SetFocus(order[0])
	}
	return f
}

// Next advances focus to the next field in order.
// From no focus it lands on the first field. Returns the new current focus ID.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	return f.move(f.Order[(idx+1)%len(f.Order)])
}

// Prev moves focus to the previous field in order.
// From no focus it lands on the last field.
func (f *FocusManager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	prev := idx - 1
	if prev < 0 {
		prev = len(f.Order) - 1
	}
	return f.move(f.Order[prev])
}

// SetFocus sets focus to the given field ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.indexOf(id) < 0 {
		return false
	}
	f.move(id)
	return true
}

// Clear removes focus from every field.
func (f *FocusManager) Clear() {
	f.move("")
}

// Focused reports whether some field has focus.
func (f *FocusManager) Focused() bool {
	return f.Current != ""
}

func (f *FocusManager) move(to string) string {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
	return f.Current
}

func (f *FocusManager) indexOf(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
