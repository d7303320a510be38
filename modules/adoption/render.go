package adoption

import (
	"bytes"
	"fmt"

	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/flash"
	"github.com/adoptmenow/formvalidation/pkg/formrules"
	"github.com/adoptmenow/formvalidation/pkg/formvalidator"
)

// rerender returns the page with the submitted values restored and the
// validation result projected by a form engine, the way the browser shows it.
// Passwords are never echoed back.
func (m *Module) rerender(p page, lang string, values map[string]string, res *formrules.Result) ([]byte, error) {
	doc, err := dom.Parse(bytes.NewReader(p.html))
	if err != nil {
		return nil, err
	}
	opts := append([]formvalidator.Option{}, m.engineOpts...)
	opts = append(opts,
		formvalidator.WithLogger(m.log),
		formvalidator.WithAnimations(false),
		formvalidator.WithCatalog(m.catalog),
	)
	if m.tr != nil && lang != "" {
		opts = append(opts, formvalidator.WithTranslator(m.tr, lang))
	}
	if m.obs != nil {
		opts = append(opts, formvalidator.WithObserver(m.obs))
	}
	eng := formvalidator.New(doc, opts...)
	defer eng.Stop()
	eng.Init()

	form := doc.ElementByID(p.FormID)
	if form == nil {
		return nil, fmt.Errorf("%w: form %s", ErrPageNotFound, p.FormID)
	}
	for _, key := range eng.Fields(p.FormID) {
		el := form.Query(dom.Any(dom.AttrEquals("name", key), dom.ID(key)))
		if el == nil {
			continue
		}
		if msg, failed := res.Errors[key]; failed {
			restore(el, values[key])
			if err := eng.SetFieldError(p.FormID, key, msg); err != nil {
				return nil, err
			}
			continue
		}
		if el.Type() == "password" {
			continue
		}
		restore(el, values[key])
		if _, _, err := eng.ValidateField(p.FormID, key); err != nil {
			return nil, err
		}
	}

	// The browser engine checks the whole form again on submit.
	for _, submit := range form.QueryAll(dom.AttrEquals("type", "submit")) {
		submit.RemoveAttr("disabled")
		submit.RemoveClass(formvalidator.ClassDisabled)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func restore(el dom.Element, value string) {
	switch el.Type() {
	case "password":
		return
	case "checkbox", "radio":
		if value != "" && value == el.Value() {
			el.SetAttr("checked", "checked")
		} else {
			el.RemoveAttr("checked")
		}
	default:
		el.SetValue(value)
	}
}

// withFlash inserts msg after the first heading of the page, or at the end of
// the body when there is none.
func withFlash(page []byte, msg flash.Message) ([]byte, error) {
	doc, err := dom.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	box := doc.CreateElement("div")
	box.AddClass("flash", "flash-"+string(msg.Kind))
	box.SetAttr("role", "status")
	box.SetText(msg.Text)

	if h := doc.Root().Query(dom.Tag("h1")); h != nil {
		h.InsertAfter(box)
	} else if body := doc.Body(); body != nil {
		body.AppendChild(box)
	} else {
		return page, nil
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
