package coda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies which variant a CellValue holds.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindCurrency
	KindImage
	KindPerson
	KindURL
	KindRowReference
	KindUnknown
)

var kindNames = map[ValueKind]string{
	KindNull:         "null",
	KindString:       "string",
	KindNumber:       "number",
	KindBool:         "bool",
	KindArray:        "array",
	KindCurrency:     "currency",
	KindImage:        "image",
	KindPerson:       "person",
	KindURL:          "url",
	KindRowReference: "rowReference",
	KindUnknown:      "unknown",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// LinkedDataType is the schema.org "@type" of a rich cell value.
type LinkedDataType string

const (
	LinkedDataImageObject     LinkedDataType = "ImageObject"
	LinkedDataMonetaryAmount  LinkedDataType = "MonetaryAmount"
	LinkedDataPerson          LinkedDataType = "Person"
	LinkedDataWebPage         LinkedDataType = "WebPage"
	LinkedDataStructuredValue LinkedDataType = "StructuredValue"
)

// SchemaOrgContext is the "@context" Coda sets on rich values.
const SchemaOrgContext = "http://schema.org/"

// ImageStatus is the availability of an image cell value.
type ImageStatus string

const (
	ImageStatusLive    ImageStatus = "live"
	ImageStatusDeleted ImageStatus = "deleted"
	ImageStatusFailed  ImageStatus = "failed"
)

// LinkedData carries the JSON-LD header shared by rich values.
type LinkedData struct {
	Context        string         `json:"@context"                 yaml:"@context"`
	Type           LinkedDataType `json:"@type"                    yaml:"@type"`
	AdditionalType string         `json:"additionalType,omitempty" yaml:"additionalType,omitempty"`
}

// CurrencyValue is a MonetaryAmount cell. Amount keeps the server's textual form.
type CurrencyValue struct {
	LinkedData `yaml:",inline"`

	Currency string      `json:"currency" yaml:"currency"`
	Amount   json.Number `json:"amount"   yaml:"amount"`
}

// ImageValue is an ImageObject cell.
type ImageValue struct {
	LinkedData `yaml:",inline"`

	Name   string      `json:"name,omitempty"   yaml:"name,omitempty"`
	URL    string      `json:"url"              yaml:"url"`
	Height float64     `json:"height,omitempty" yaml:"height,omitempty"`
	Width  float64     `json:"width,omitempty"  yaml:"width,omitempty"`
	Status ImageStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// PersonValue is a Person cell.
type PersonValue struct {
	LinkedData `yaml:",inline"`

	Name  string `json:"name"            yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// URLValue is a WebPage cell.
type URLValue struct {
	LinkedData `yaml:",inline"`

	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	URL  string `json:"url"            yaml:"url"`
}

// RowReferenceValue is a StructuredValue cell pointing at a row of another table.
type RowReferenceValue struct {
	LinkedData `yaml:",inline"`

	Name     string `json:"name"     yaml:"name"`
	URL      string `json:"url"      yaml:"url"`
	TableID  string `json:"tableId"  yaml:"tableId"`
	RowID    string `json:"rowId"    yaml:"rowId"`
	TableURL string `json:"tableUrl" yaml:"tableUrl"`
}

// CellValue is one cell, control or formula value. It decodes every shape the
// API returns and keeps the original JSON so a value read from the server is
// written back unchanged.
type CellValue struct {
	kind     ValueKind
	str      string
	num      json.Number
	boolean  bool
	items    []CellValue
	currency *CurrencyValue
	image    *ImageValue
	person   *PersonValue
	url      *URLValue
	rowRef   *RowReferenceValue
	raw      json.RawMessage
}

// NullValue returns an empty cell value.
func NullValue() CellValue {
	return CellValue{kind: KindNull}
}

// StringValue wraps a text value.
func StringValue(s string) CellValue {
	return CellValue{kind: KindString, str: s}
}

// NumberValue wraps a numeric value.
func NumberValue(f float64) CellValue {
	return CellValue{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'f', -1, 64))}
}

// IntValue wraps an integer value.
func IntValue(i int64) CellValue {
	return CellValue{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// BoolValue wraps a boolean value.
func BoolValue(b bool) CellValue {
	return CellValue{kind: KindBool, boolean: b}
}

// ArrayValue wraps a list of values.
func ArrayValue(items ...CellValue) CellValue {
	return CellValue{kind: KindArray, items: items}
}

// ValueOf converts a plain Go scalar into a CellValue.
func ValueOf(v interface{}) (CellValue, error) {
	switch val := v.(type) {
	case nil:
		return NullValue(), nil
	case CellValue:
		return val, nil
	case string:
		return StringValue(val), nil
	case bool:
		return BoolValue(val), nil
	case int:
		return IntValue(int64(val)), nil
	case int32:
		return IntValue(int64(val)), nil
	case int64:
		return IntValue(val), nil
	case float32:
		return NumberValue(float64(val)), nil
	case float64:
		return NumberValue(val), nil
	case json.Number:
		return CellValue{kind: KindNumber, num: val}, nil
	case []interface{}:
		items := make([]CellValue, 0, len(val))

		for _, item := range val {
			cell, err := ValueOf(item)
			if err != nil {
				return CellValue{}, err
			}

			items = append(items, cell)
		}

		return ArrayValue(items...), nil
	default:
		return CellValue{}, fmt.Errorf("%w: %T", ErrUnsupportedCellType, v)
	}
}

// ParseCellInput interprets command-line text: JSON literals (numbers, booleans,
// arrays, objects, quoted strings) are decoded, anything else is taken as text.
func ParseCellInput(s string) CellValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return StringValue(s)
	}

	var cell CellValue
	if err := json.Unmarshal([]byte(trimmed), &cell); err == nil && cell.kind != KindNull {
		return cell
	}

	return StringValue(s)
}

// Kind returns the variant held by the value.
func (v CellValue) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is empty.
func (v CellValue) IsNull() bool {
	return v.kind == KindNull
}

// AsString returns the text of a string value.
func (v CellValue) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsFloat returns a number value as float64.
func (v CellValue) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	f, err := v.num.Float64()

	return f, err == nil
}

// AsInt returns a number value as int64 when it has no fractional part.
func (v CellValue) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	i, err := v.num.Int64()
	if err == nil {
		return i, true
	}

	f, err := v.num.Float64()
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int64(f), true
}

// AsBool returns the value of a boolean cell.
func (v CellValue) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsArray returns the elements of an array value.
func (v CellValue) AsArray() ([]CellValue, bool) {
	return v.items, v.kind == KindArray
}

// AsCurrency returns a MonetaryAmount value.
func (v CellValue) AsCurrency() (*CurrencyValue, bool) {
	return v.currency, v.kind == KindCurrency
}

// AsImage returns an ImageObject value.
func (v CellValue) AsImage() (*ImageValue, bool) {
	return v.image, v.kind == KindImage
}

// AsPerson returns a Person value.
func (v CellValue) AsPerson() (*PersonValue, bool) {
	return v.person, v.kind == KindPerson
}

// AsURL returns a WebPage value.
func (v CellValue) AsURL() (*URLValue, bool) {
	return v.url, v.kind == KindURL
}

// AsRowReference returns a StructuredValue row reference.
func (v CellValue) AsRowReference() (*RowReferenceValue, bool) {
	return v.rowRef, v.kind == KindRowReference
}

// Raw returns the JSON the value was decoded from, or its encoding when it was
// built locally.
func (v CellValue) Raw() json.RawMessage {
	if v.raw != nil {
		return v.raw
	}

	data, err := v.MarshalJSON()
	if err != nil {
		return nil
	}

	return data
}

// Interface returns the value as plain Go data: nil, string, json.Number, bool,
// []interface{} or map[string]interface{} for rich and unknown values.
func (v CellValue) Interface() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.boolean
	case KindArray:
		out := make([]interface{}, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Interface())
		}

		return out
	default:
		var out map[string]interface{}

		dec := json.NewDecoder(bytes.NewReader(v.Raw()))
		dec.UseNumber()

		if err := dec.Decode(&out); err != nil {
			return string(v.Raw())
		}

		return out
	}
}

// String renders the value for display.
func (v CellValue) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindArray:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			parts = append(parts, item.String())
		}

		return strings.Join(parts, ", ")
	case KindCurrency:
		return strings.TrimSpace(v.currency.Currency + " " + v.currency.Amount.String())
	case KindImage:
		return firstNonEmpty(v.image.Name, v.image.URL)
	case KindPerson:
		if v.person.Email != "" && v.person.Name != "" {
			return v.person.Name + " <" + v.person.Email + ">"
		}

		return firstNonEmpty(v.person.Name, v.person.Email)
	case KindURL:
		return firstNonEmpty(v.url.Name, v.url.URL)
	case KindRowReference:
		return firstNonEmpty(v.rowRef.Name, v.rowRef.RowID)
	default:
		return string(v.raw)
	}
}

// MarshalJSON implements json.Marshaler.
func (v CellValue) MarshalJSON() ([]byte, error) {
	if v.raw != nil {
		return v.raw, nil
	}

	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.num == "" {
			return []byte("0"), nil
		}

		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.boolean)
	case KindArray:
		if v.items == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.items)
	case KindCurrency:
		return json.Marshal(v.currency)
	case KindImage:
		return json.Marshal(v.image)
	case KindPerson:
		return json.Marshal(v.person)
	case KindURL:
		return json.Marshal(v.url)
	case KindRowReference:
		return json.Marshal(v.rowRef)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*v = NullValue()

		return nil
	}

	decoded, err := decodeCell(trimmed)
	if err != nil {
		return err
	}

	decoded.raw = append(json.RawMessage(nil), trimmed...)
	*v = decoded

	return nil
}

// MarshalYAML renders the value as plain data so YAML output stays readable.
func (v CellValue) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

func decodeCell(data []byte) (CellValue, error) {
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return CellValue{}, fmt.Errorf("decoding cell value: invalid literal %q", data)
		}

		return NullValue(), nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return CellValue{}, fmt.Errorf("decoding cell string: %w", err)
		}

		return StringValue(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return CellValue{}, fmt.Errorf("decoding cell bool: %w", err)
		}

		return BoolValue(b), nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return CellValue{}, fmt.Errorf("decoding cell array: %w", err)
		}

		items := make([]CellValue, len(elems))
		for i, elem := range elems {
			if err := items[i].UnmarshalJSON(elem); err != nil {
				return CellValue{}, err
			}
		}

		return CellValue{kind: KindArray, items: items}, nil
	case '{':
		return decodeRichCell(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return CellValue{}, fmt.Errorf("decoding cell number: %w", err)
		}

		return CellValue{kind: KindNumber, num: n}, nil
	}
}

func decodeRichCell(data []byte) (CellValue, error) {
	var header LinkedData
	if err := json.Unmarshal(data, &header); err != nil {
		return CellValue{}, fmt.Errorf("decoding rich cell: %w", err)
	}

	var (
		out    CellValue
		target interface{}
	)

	switch header.Type {
	case LinkedDataMonetaryAmount:
		out.kind, out.currency = KindCurrency, &CurrencyValue{}
		target = out.currency
	case LinkedDataImageObject:
		out.kind, out.image = KindImage, &ImageValue{}
		target = out.image
	case LinkedDataPerson:
		out.kind, out.person = KindPerson, &PersonValue{}
		target = out.person
	case LinkedDataWebPage:
		out.kind, out.url = KindURL, &URLValue{}
		target = out.url
	case LinkedDataStructuredValue:
		if header.AdditionalType != "row" {
			return CellValue{kind: KindUnknown}, nil
		}

		out.kind, out.rowRef = KindRowReference, &RowReferenceValue{}
		target = out.rowRef
	default:
		return CellValue{kind: KindUnknown}, nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return CellValue{}, fmt.Errorf("decoding %s cell: %w", header.Type, err)
	}

	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
