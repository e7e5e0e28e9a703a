package textfield

// Value is the snapshot reported to the host after every committed change.
type Value struct {
	Text           string `json:"text"`
	Data           string `json:"data"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
	InputText      string `json:"input_text"`
}

// Host receives notifications from a Field.
type Host interface {
	UpdateFocus(focused bool)
	UpdateCursor(position int)
	UpdateValue(v Value)
	SubmitText(text string)
	HideKeyboard()
}

// NopHost discards every notification.
type NopHost struct{}

func (NopHost) UpdateFocus(bool)  {}
func (NopHost) UpdateCursor(int)  {}
func (NopHost) UpdateValue(Value) {}
func (NopHost) SubmitText(string) {}
func (NopHost) HideKeyboard()     {}
