package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form models a single HTML form and its submittable fields.
type Form struct {
	// Action is the form action attribute, possibly relative or empty.
	Action string

	// Method is the upper-cased HTTP method, defaulting to GET.
	Method string

	Fields []Field
}

// Field is one named input, select, or textarea control with its default
// value as served in the markup.
type Field struct {
	Name  string
	Type  string
	Value string
}

// Forms returns every form in the document, in document order. Buttons and
// unnamed controls are excluded; hidden fields, CSRF tokens included, are
// kept with their served values.
func Forms(doc *goquery.Document) []Form {
	var forms []Form
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		f := Form{
			Action: s.AttrOr("action", ""),
			Method: strings.ToUpper(s.AttrOr("method", "GET")),
		}
		s.Find("input, select, textarea").Each(func(_ int, c *goquery.Selection) {
			if fld, ok := fieldOf(c); ok {
				f.Fields = append(f.Fields, fld)
			}
		})
		forms = append(forms, f)
	})
	return forms
}

// Values returns the form's name/value pairs as url.Values, ready to be
// completed and posted back.
func (f Form) Values() url.Values {
	v := url.Values{}
	for _, fld := range f.Fields {
		v.Add(fld.Name, fld.Value)
	}
	return v
}

func fieldOf(c *goquery.Selection) (Field, bool) {
	name := c.AttrOr("name", "")
	if name == "" {
		return Field{}, false
	}
	fld := Field{Name: name}
	switch goquery.NodeName(c) {
	case "input":
		fld.Type = strings.ToLower(c.AttrOr("type", "text"))
		switch fld.Type {
		case "submit", "reset", "button", "image":
			return Field{}, false
		}
		fld.Value = c.AttrOr("value", "")
	case "select":
		fld.Type = "select"
		opt := c.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = c.Find("option").First()
		}
		fld.Value = opt.AttrOr("value", strings.TrimSpace(opt.Text()))
	case "textarea":
		fld.Type = "textarea"
		fld.Value = strings.TrimSpace(c.Text())
	}
	return fld, true
}
