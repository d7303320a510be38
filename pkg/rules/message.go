package rules

// Message is the error text of a rule: either static text or a formatter applied to
// the rule parameter at display time. The zero value resolves to "".
type Message struct {
	text   string
	format func(Param) string
}

// Static returns a Message that always resolves to text.
func Static(text string) Message {
	return Message{text: text}
}

// Formatted returns a Message that resolves by calling fn with the rule parameter.
func Formatted(fn func(Param) string) Message {
	return Message{format: fn}
}

func (m Message) IsFormatted() bool { return m.format != nil }

// Resolve returns the text for the given parameter.
func (m Message) Resolve(p Param) string {
	if m.format != nil {
		return m.format(p)
	}
	return m.text
}
