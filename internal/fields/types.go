package fields

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"
)

// Built-in type tags.
const (
	TypeText     = "TextField"
	TypeTextarea = "TextareaField"
	TypeRichText = "RichTextField"
	TypeNumber   = "NumberField"
	TypeCheckbox = "CheckboxField"
	TypeDate     = "DateField"
	TypeSelect   = "SelectField"
	TypeImage    = "ImageField"
)

var builtins = map[string]FieldType{
	TypeText:     FieldTypeFunc(validateString),
	TypeTextarea: FieldTypeFunc(validateString),
	TypeRichText: FieldTypeFunc(validateString),
	TypeNumber:   FieldTypeFunc(validateNumber),
	TypeCheckbox: FieldTypeFunc(validateBool),
	TypeDate:     FieldTypeFunc(validateDate),
	TypeSelect:   FieldTypeFunc(validateSelect),
	TypeImage:    FieldTypeFunc(validateImage),
}

func validateString(_ Field, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.New("must be a string")
	}
	return nil
}

func validateNumber(_ Field, raw json.RawMessage) error {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func validateBool(_ Field, raw json.RawMessage) error {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return errors.New("must be a boolean")
	}
	return nil
}

func validateDate(_ Field, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.New("must be a date string")
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return fmt.Errorf("%q is not a YYYY-MM-DD or RFC 3339 date", s)
}

func validateSelect(f Field, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.New("must be a string")
	}
	if !slices.Contains(f.Options, s) {
		return fmt.Errorf("%q is not one of the field options", s)
	}
	return nil
}

type image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// validateImage accepts either a bare URL string or {"url": ..., "alt": ...}.
func validateImage(_ Field, raw json.RawMessage) error {
	var img image
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		img.URL = s
	} else if err := json.Unmarshal(raw, &img); err != nil {
		return errors.New("must be a URL string or an object with a url")
	}

	u, err := url.Parse(img.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%q is not an absolute http(s) URL", img.URL)
	}
	return nil
}
