package dom

// EventType names an event.
type EventType string

const (
	EventBlur   EventType = "blur"
	EventInput  EventType = "input"
	EventSubmit EventType = "submit"
)

// Event is dispatched to listeners registered on its target.
type Event struct {
	Type      EventType
	Target    Element
	prevented bool
}

// NewEvent returns an event of type t. Dispatch fills in the target.
func NewEvent(t EventType) *Event {
	return &Event{Type: t}
}

// PreventDefault suppresses the default action of the event.
func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) DefaultPrevented() bool { return e.prevented }

// Listener handles an event.
type Listener func(*Event)

// Element is a DOM element.
type Element interface {
	// TagName returns the lower-case tag name.
	TagName() string
	ID() string
	SetID(id string)
	Name() string
	// Type returns the lower-case type attribute ("text" for inputs without one).
	Type() string
	// Value returns the current form value: the value attribute of inputs, the text of
	// a textarea, or the selected option of a select.
	Value() string
	SetValue(v string)

	Attr(name string) (string, bool)
	HasAttr(name string) bool
	SetAttr(name, value string)
	RemoveAttr(name string)

	Classes() []string
	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	ToggleClass(name string, on bool)

	// Style returns an inline style property, or "".
	Style(prop string) string
	// SetStyle sets an inline style property. An empty value removes it.
	SetStyle(prop, value string)

	Text() string
	SetText(text string)

	Parent() Element
	Closest(m Matcher) Element
	Query(m Matcher) Element
	QueryAll(m Matcher) []Element
	AppendChild(child Element)
	// InsertAfter inserts sibling immediately after the receiver.
	InsertAfter(sibling Element)
	Remove()

	AddEventListener(t EventType, l Listener)
	Dispatch(e *Event)

	Focus()
	ScrollIntoView()
	// Submit performs the native form submission. It does not dispatch a submit event.
	Submit()
}

// Document is a DOM document.
type Document interface {
	Root() Element
	ElementByID(id string) Element
	CreateElement(tag string) Element
	QueryAll(m Matcher) []Element
	// Observe calls fn for every element inserted under container until cancel is called.
	Observe(container Element, fn func(Element)) (cancel func())
	ActiveElement() Element
}
