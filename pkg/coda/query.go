package coda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RowQueryType selects how a row query identifies its column.
type RowQueryType string

const (
	RowQueryByID   RowQueryType = "id"
	RowQueryByName RowQueryType = "name"
)

// RowQuery filters a row listing to rows whose column equals Value.
type RowQuery struct {
	Type       RowQueryType
	ColumnID   string
	ColumnName string
	Value      interface{}
}

// QueryByColumnName builds a query matching a column by its display name.
func QueryByColumnName(name string, value interface{}) *RowQuery {
	return &RowQuery{Type: RowQueryByName, ColumnName: name, Value: value}
}

// QueryByColumnID builds a query matching a column by its id.
func QueryByColumnID(id string, value interface{}) *RowQuery {
	return &RowQuery{Type: RowQueryByID, ColumnID: id, Value: value}
}

// Validate checks that the query names exactly the column its type asks for.
func (q *RowQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Type, validation.Required, validation.In(RowQueryByID, RowQueryByName)),
		validation.Field(&q.ColumnID, validation.When(q.Type == RowQueryByID, validation.Required)),
		validation.Field(&q.ColumnName, validation.When(q.Type == RowQueryByName, validation.Required)),
	)
}

// ConstructQuery renders a row query in the API's "<column>:<value>" syntax.
// Column names are JSON-quoted, column ids are not. String values are JSON-quoted
// while numbers and booleans are written bare. A nil query yields "".
func ConstructQuery(q *RowQuery) (string, error) {
	if q == nil {
		return "", nil
	}

	if err := q.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRowQuery, err)
	}

	value, err := formatQueryValue(q.Value)
	if err != nil {
		return "", err
	}

	if q.Type == RowQueryByName {
		return quoteJSON(q.ColumnName) + ":" + value, nil
	}

	return q.ColumnID + ":" + value, nil
}

func formatQueryValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return quoteJSON(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case CellValue:
		switch val.Kind() {
		case KindString, KindNumber, KindBool:
			return formatQueryValue(val.Interface())
		default:
			return "", fmt.Errorf("%w: %s value in row query", ErrInvalidRowQuery, val.Kind())
		}
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", ErrInvalidRowQuery, v)
	}
}

// quoteJSON quotes s as a JSON string without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)

	return strings.TrimSuffix(buf.String(), "\n")
}

// ListOptions carries the pagination parameters every list endpoint accepts.
type ListOptions struct {
	Limit     int
	PageToken string
}

// ToValues converts the options to URL query values.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	if o.PageToken != "" {
		values.Set("pageToken", o.PageToken)
	}

	return values
}

// DocListOptions filters the docs listing.
type DocListOptions struct {
	ListOptions

	IsOwner     *bool
	IsPublished *bool
	IsStarred   *bool
	InGallery   *bool
	Query       string
	SourceDoc   string
	WorkspaceID string
	FolderID    string
}

// ToValues converts the options to URL query values.
func (o *DocListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()
	setBool(values, "isOwner", o.IsOwner)
	setBool(values, "isPublished", o.IsPublished)
	setBool(values, "isStarred", o.IsStarred)
	setBool(values, "inGallery", o.InGallery)
	setString(values, "query", o.Query)
	setString(values, "sourceDoc", o.SourceDoc)
	setString(values, "workspaceId", o.WorkspaceID)
	setString(values, "folderId", o.FolderID)

	return values
}

// TableListOptions filters the tables listing.
type TableListOptions struct {
	ListOptions

	SortBy     string
	TableTypes []TableType
}

// ToValues converts the options to URL query values. Updated table layouts are
// always requested.
func (o *TableListOptions) ToValues() url.Values {
	values := url.Values{}
	if o != nil {
		values = o.ListOptions.ToValues()
		setString(values, "sortBy", o.SortBy)

		if len(o.TableTypes) > 0 {
			types := make([]string, 0, len(o.TableTypes))
			for _, t := range o.TableTypes {
				types = append(types, string(t))
			}

			values.Set("tableTypes", strings.Join(types, ","))
		}
	}

	values.Set("useUpdatedTableLayouts", "true")

	return values
}

// ColumnListOptions filters the columns listing.
type ColumnListOptions struct {
	ListOptions

	VisibleOnly *bool
}

// ToValues converts the options to URL query values.
func (o *ColumnListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()
	setBool(values, "visibleOnly", o.VisibleOnly)

	return values
}

// RowListOptions filters the rows listing.
type RowListOptions struct {
	ListOptions

	Query          *RowQuery
	SortBy         RowSortBy
	UseColumnNames bool
	ValueFormat    RowValueFormat
	VisibleOnly    *bool
	SyncToken      string
}

// ToValues converts the options to URL query values.
func (o *RowListOptions) ToValues() (url.Values, error) {
	if o == nil {
		return url.Values{}, nil
	}

	values := o.ListOptions.ToValues()

	query, err := ConstructQuery(o.Query)
	if err != nil {
		return nil, err
	}

	setString(values, "query", query)
	setString(values, "sortBy", string(o.SortBy))
	setString(values, "valueFormat", string(o.ValueFormat))
	setBool(values, "visibleOnly", o.VisibleOnly)
	setString(values, "syncToken", o.SyncToken)

	if o.UseColumnNames {
		values.Set("useColumnNames", "true")
	}

	return values, nil
}

// RowGetOptions controls how a single row is rendered. ValueFormat defaults to rich.
type RowGetOptions struct {
	UseColumnNames bool
	ValueFormat    RowValueFormat
}

// ToValues converts the options to URL query values.
func (o *RowGetOptions) ToValues() url.Values {
	values := url.Values{}
	format := ValueFormatRich

	if o != nil {
		if o.UseColumnNames {
			values.Set("useColumnNames", "true")
		}

		if o.ValueFormat != "" {
			format = o.ValueFormat
		}
	}

	values.Set("valueFormat", string(format))

	return values
}

// SortedListOptions is used by the controls and formulas listings.
type SortedListOptions struct {
	ListOptions

	SortBy string
}

// ToValues converts the options to URL query values.
func (o *SortedListOptions) ToValues() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.ToValues()
	setString(values, "sortBy", o.SortBy)

	return values
}

func setString(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setBool(values url.Values, key string, value *bool) {
	if value != nil {
		values.Set(key, strconv.FormatBool(*value))
	}
}

// Bool returns a pointer to b, for optional boolean options.
func Bool(b bool) *bool {
	return &b
}
