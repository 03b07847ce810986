package coda

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Doc is a snapshot of a Coda doc.
type Doc struct {
	ID          string        `json:"id"                    yaml:"id"`
	Type        ResourceType  `json:"type"                  yaml:"type"`
	Href        string        `json:"href"                  yaml:"href"`
	BrowserLink string        `json:"browserLink"           yaml:"browserLink"`
	Name        string        `json:"name"                  yaml:"name"`
	Owner       string        `json:"owner"                 yaml:"owner"`
	OwnerName   string        `json:"ownerName"             yaml:"ownerName"`
	Icon        *Icon         `json:"icon,omitempty"        yaml:"icon,omitempty"`
	DocSize     *DocSize      `json:"docSize,omitempty"     yaml:"docSize,omitempty"`
	SourceDoc   *DocRef       `json:"sourceDoc,omitempty"   yaml:"sourceDoc,omitempty"`
	Published   *PublishInfo  `json:"published,omitempty"   yaml:"published,omitempty"`
	Folder      *FolderRef    `json:"folder,omitempty"      yaml:"folder,omitempty"`
	Workspace   *WorkspaceRef `json:"workspace,omitempty"   yaml:"workspace,omitempty"`
	WorkspaceID string        `json:"workspaceId,omitempty" yaml:"workspaceId,omitempty"`
	FolderID    string        `json:"folderId,omitempty"    yaml:"folderId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"             yaml:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"             yaml:"updatedAt"`
}

// DocSize reports how large a doc is.
type DocSize struct {
	TotalRowCount     int  `json:"totalRowCount"     yaml:"totalRowCount"`
	TableAndViewCount int  `json:"tableAndViewCount" yaml:"tableAndViewCount"`
	PageCount         int  `json:"pageCount"         yaml:"pageCount"`
	OverAPISizeLimit  bool `json:"overApiSizeLimit"  yaml:"overApiSizeLimit"`
}

// PublishInfo describes how a published doc is exposed.
type PublishInfo struct {
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	BrowserLink  string      `json:"browserLink"           yaml:"browserLink"`
	ImageLink    string      `json:"imageLink,omitempty"   yaml:"imageLink,omitempty"`
	Discoverable bool        `json:"discoverable"          yaml:"discoverable"`
	EarnCredit   bool        `json:"earnCredit"            yaml:"earnCredit"`
	Mode         PublishMode `json:"mode"                  yaml:"mode"`
	Categories   []Category  `json:"categories,omitempty"  yaml:"categories,omitempty"`
}

// Category is a doc gallery category.
type Category struct {
	Name string `json:"name" yaml:"name"`
}

// Page is a snapshot of a doc page.
type Page struct {
	ID          string       `json:"id"                    yaml:"id"`
	Type        ResourceType `json:"type"                  yaml:"type"`
	Href        string       `json:"href"                  yaml:"href"`
	BrowserLink string       `json:"browserLink"           yaml:"browserLink"`
	Name        string       `json:"name"                  yaml:"name"`
	Subtitle    string       `json:"subtitle,omitempty"    yaml:"subtitle,omitempty"`
	Icon        *Icon        `json:"icon,omitempty"        yaml:"icon,omitempty"`
	Image       *Image       `json:"image,omitempty"       yaml:"image,omitempty"`
	ContentType string       `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	IsHidden    bool         `json:"isHidden,omitempty"    yaml:"isHidden,omitempty"`
	Parent      *PageRef     `json:"parent,omitempty"      yaml:"parent,omitempty"`
	Children    []PageRef    `json:"children"              yaml:"children"`
}

// Table is a snapshot of a table or view.
type Table struct {
	ID            string         `json:"id"                    yaml:"id"`
	Type          ResourceType   `json:"type"                  yaml:"type"`
	TableType     TableType      `json:"tableType"             yaml:"tableType"`
	Href          string         `json:"href"                  yaml:"href"`
	BrowserLink   string         `json:"browserLink"           yaml:"browserLink"`
	Name          string         `json:"name"                  yaml:"name"`
	Parent        *PageRef       `json:"parent,omitempty"      yaml:"parent,omitempty"`
	ParentTable   *TableRef      `json:"parentTable,omitempty" yaml:"parentTable,omitempty"`
	DisplayColumn *ColumnRef     `json:"displayColumn"         yaml:"displayColumn"`
	RowCount      int            `json:"rowCount"              yaml:"rowCount"`
	Sorts         []Sort         `json:"sorts"                 yaml:"sorts"`
	Layout        TableLayout    `json:"layout"                yaml:"layout"`
	Filter        *FormulaDetail `json:"filter,omitempty"      yaml:"filter,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"             yaml:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"             yaml:"updatedAt"`
}

// Sort is one sort applied to a table.
type Sort struct {
	Column    ColumnRef     `json:"column"    yaml:"column"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// FormulaDetail describes a formula attached to a table.
type FormulaDetail struct {
	Valid          bool `json:"valid"                    yaml:"valid"`
	IsVolatile     bool `json:"isVolatile,omitempty"     yaml:"isVolatile,omitempty"`
	HasUserFormula bool `json:"hasUserFormula,omitempty" yaml:"hasUserFormula,omitempty"`
}

// Column is a snapshot of a table column.
type Column struct {
	ID           string       `json:"id"                     yaml:"id"`
	Type         ResourceType `json:"type"                   yaml:"type"`
	Href         string       `json:"href"                   yaml:"href"`
	Name         string       `json:"name"                   yaml:"name"`
	Display      bool         `json:"display,omitempty"      yaml:"display,omitempty"`
	Calculated   bool         `json:"calculated,omitempty"   yaml:"calculated,omitempty"`
	Formula      string       `json:"formula,omitempty"      yaml:"formula,omitempty"`
	DefaultValue string       `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Format       ColumnFormat `json:"format"                 yaml:"format"`
	Parent       *TableRef    `json:"parent,omitempty"       yaml:"parent,omitempty"`
}

// ColumnFormat is the format of a column. Type-specific settings that are not
// modelled here are kept in Extra.
type ColumnFormat struct {
	Type    ColumnType                 `json:"type"            yaml:"type"`
	IsArray bool                       `json:"isArray"         yaml:"isArray"`
	Table   *TableRef                  `json:"table,omitempty" yaml:"table,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"               yaml:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (f *ColumnFormat) UnmarshalJSON(data []byte) error {
	type known ColumnFormat

	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	delete(all, "type")
	delete(all, "isArray")
	delete(all, "table")

	*f = ColumnFormat(k)
	if len(all) > 0 {
		f.Extra = all
	}

	return nil
}

// MarshalJSON writes the known fields merged with Extra.
func (f ColumnFormat) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(f.Extra)+3)
	for k, v := range f.Extra {
		out[k] = v
	}

	out["type"] = f.Type
	out["isArray"] = f.IsArray

	if f.Table != nil {
		out["table"] = f.Table
	}

	return json.Marshal(out)
}

// Row is a snapshot of a table row. Values is keyed by column id, or by column
// name when the row was fetched with UseColumnNames.
type Row struct {
	ID          string               `json:"id"                  yaml:"id"`
	Type        ResourceType         `json:"type"                yaml:"type"`
	Href        string               `json:"href"                yaml:"href"`
	Name        string               `json:"name"                yaml:"name"`
	Index       int                  `json:"index"               yaml:"index"`
	BrowserLink string               `json:"browserLink"         yaml:"browserLink"`
	CreatedAt   time.Time            `json:"createdAt"           yaml:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"           yaml:"updatedAt"`
	Values      map[string]CellValue `json:"values"              yaml:"values"`
	Parent      *TableRef            `json:"parent,omitempty"    yaml:"parent,omitempty"`
}

// Control is a snapshot of a doc control.
type Control struct {
	ID          string       `json:"id"               yaml:"id"`
	Type        ResourceType `json:"type"             yaml:"type"`
	Href        string       `json:"href"             yaml:"href"`
	Name        string       `json:"name"             yaml:"name"`
	ControlType ControlType  `json:"controlType"      yaml:"controlType"`
	Value       CellValue    `json:"value"            yaml:"value"`
	Parent      *PageRef     `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Formula is a snapshot of a named formula.
type Formula struct {
	ID     string       `json:"id"               yaml:"id"`
	Type   ResourceType `json:"type"             yaml:"type"`
	Href   string       `json:"href"             yaml:"href"`
	Name   string       `json:"name"             yaml:"name"`
	Value  CellValue    `json:"value"            yaml:"value"`
	Parent *PageRef     `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// User is the account behind the API token.
type User struct {
	Name        string        `json:"name"                  yaml:"name"`
	LoginID     string        `json:"loginId"               yaml:"loginId"`
	Type        ResourceType  `json:"type"                  yaml:"type"`
	Scoped      bool          `json:"scoped"                yaml:"scoped"`
	TokenName   string        `json:"tokenName"             yaml:"tokenName"`
	Href        string        `json:"href"                  yaml:"href"`
	PictureLink string        `json:"pictureLink,omitempty" yaml:"pictureLink,omitempty"`
	Workspace   *WorkspaceRef `json:"workspace,omitempty"   yaml:"workspace,omitempty"`
}

// APILink is the result of resolving a browser link.
type APILink struct {
	Type        ResourceType `json:"type"                  yaml:"type"`
	Href        string       `json:"href"                  yaml:"href"`
	BrowserLink string       `json:"browserLink,omitempty" yaml:"browserLink,omitempty"`
	Resource    Ref          `json:"resource"              yaml:"resource"`
}

// MutationStatus reports whether an asynchronous write has been applied.
type MutationStatus struct {
	Completed bool   `json:"completed"         yaml:"completed"`
	Warning   string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// ACLMetadata describes what the caller may do with a doc's sharing settings.
type ACLMetadata struct {
	CanShare        bool `json:"canShare"        yaml:"canShare"`
	CanShareWithOrg bool `json:"canShareWithOrg" yaml:"canShareWithOrg"`
	CanCopy         bool `json:"canCopy"         yaml:"canCopy"`
}

// Permission grants a principal access to a doc.
type Permission struct {
	ID        string     `json:"id"        yaml:"id"`
	Principal Principal  `json:"principal" yaml:"principal"`
	Access    AccessType `json:"access"    yaml:"access"`
}

// Principal is the grantee of a permission. Email is set for email
// principals and Domain for domain principals.
type Principal struct {
	Type   PrincipalType `json:"type"             yaml:"type"`
	Email  string        `json:"email,omitempty"  yaml:"email,omitempty"`
	Domain string        `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// EmailPrincipal grants access to one user.
func EmailPrincipal(email string) Principal {
	return Principal{Type: PrincipalEmail, Email: email}
}

// DomainPrincipal grants access to everyone in an email domain.
func DomainPrincipal(domain string) Principal {
	return Principal{Type: PrincipalDomain, Domain: domain}
}

// AnyonePrincipal grants access to anyone with the link.
func AnyonePrincipal() Principal {
	return Principal{Type: PrincipalAnyone}
}

// Validate checks that the principal carries the field its type requires.
func (p Principal) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.Required,
			validation.In(PrincipalEmail, PrincipalDomain, PrincipalAnyone)),
		validation.Field(&p.Email,
			validation.When(p.Type == PrincipalEmail, validation.Required, is.EmailFormat).
				Else(validation.Empty)),
		validation.Field(&p.Domain,
			validation.When(p.Type == PrincipalDomain, validation.Required, is.Domain).
				Else(validation.Empty)),
	)
}

// DocCreateRequest creates a new doc, optionally as a copy of SourceDoc.
type DocCreateRequest struct {
	Title     string `json:"title,omitempty"     yaml:"title,omitempty"`
	SourceDoc string `json:"sourceDoc,omitempty" yaml:"sourceDoc,omitempty"`
	Timezone  string `json:"timezone,omitempty"  yaml:"timezone,omitempty"`
	FolderID  string `json:"folderId,omitempty"  yaml:"folderId,omitempty"`
}

// Validate implements validation.Validatable.
func (r *DocCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, 1000)),
		validation.Field(&r.Timezone, validation.By(validTimezone)),
	)
}

func validTimezone(value interface{}) error {
	tz, _ := value.(string)
	if tz == "" {
		return nil
	}

	if _, err := time.LoadLocation(tz); err != nil {
		return validation.NewError("validation_timezone", "must be an IANA time zone")
	}

	return nil
}

// PublishRequest publishes a doc.
type PublishRequest struct {
	Slug          string      `json:"slug,omitempty"          yaml:"slug,omitempty"`
	Discoverable  *bool       `json:"discoverable,omitempty"  yaml:"discoverable,omitempty"`
	EarnCredit    *bool       `json:"earnCredit,omitempty"    yaml:"earnCredit,omitempty"`
	CategoryNames []string    `json:"categoryNames,omitempty" yaml:"categoryNames,omitempty"`
	Mode          PublishMode `json:"mode,omitempty"          yaml:"mode,omitempty"`
}

// Validate implements validation.Validatable.
func (r *PublishRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Mode, validation.In(PublishModeView, PublishModePlay, PublishModeEdit)),
		validation.Field(&r.CategoryNames, validation.Each(validation.Required)),
	)
}

// PageUpdateRequest changes a page's presentation. Empty fields are left as is.
type PageUpdateRequest struct {
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	IconName string `json:"iconName,omitempty" yaml:"iconName,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Validate implements validation.Validatable.
func (r *PageUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ImageURL, is.URL),
	)
}

// PermissionAddRequest grants access to a doc.
type PermissionAddRequest struct {
	Access        AccessType `json:"access"                  yaml:"access"`
	Principal     Principal  `json:"principal"               yaml:"principal"`
	SuppressEmail bool       `json:"suppressEmail,omitempty" yaml:"suppressEmail,omitempty"`
}

// Validate implements validation.Validatable.
func (r *PermissionAddRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Access, validation.Required,
			validation.In(AccessReadOnly, AccessWrite, AccessComment, AccessNone)),
		validation.Field(&r.Principal),
	)
}

// CellEdit sets one column of a row.
type CellEdit struct {
	Column string    `json:"column" yaml:"column"`
	Value  CellValue `json:"value"  yaml:"value"`
}

// Validate implements validation.Validatable.
func (c CellEdit) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Column, validation.Required),
	)
}

// RowEdit is the set of cells written to one row.
type RowEdit struct {
	Cells []CellEdit `json:"cells" yaml:"cells"`
}

// Validate implements validation.Validatable.
func (r RowEdit) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Cells, validation.Required),
	)
}

// NewRowEdit builds a row edit from column/value pairs.
func NewRowEdit(cells map[string]CellValue) RowEdit {
	edit := RowEdit{Cells: make([]CellEdit, 0, len(cells))}
	for column, value := range cells {
		edit.Cells = append(edit.Cells, CellEdit{Column: column, Value: value})
	}

	return edit
}

// RowUpsertRequest inserts rows, or updates the rows matching KeyColumns.
type RowUpsertRequest struct {
	Rows       []RowEdit `json:"rows"                 yaml:"rows"`
	KeyColumns []string  `json:"keyColumns,omitempty" yaml:"keyColumns,omitempty"`
}

// Validate implements validation.Validatable.
func (r *RowUpsertRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Rows, validation.Required),
		validation.Field(&r.KeyColumns, validation.Each(validation.Required)),
	)
}

// RowUpdateRequest replaces cells of a single row.
type RowUpdateRequest struct {
	Row RowEdit `json:"row" yaml:"row"`
}

// Validate implements validation.Validatable.
func (r *RowUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Row),
	)
}

// RowsDeleteRequest deletes several rows at once.
type RowsDeleteRequest struct {
	RowIDs []string `json:"rowIds" yaml:"rowIds"`
}

// Validate implements validation.Validatable.
func (r *RowsDeleteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RowIDs, validation.Required, validation.Each(validation.Required)),
	)
}

// MutationResponse is the body of every asynchronous write.
type MutationResponse struct {
	RequestID string `json:"requestId" yaml:"requestId"`
}

// RowsUpsertResult is returned by a row upsert.
type RowsUpsertResult struct {
	Mutation    MutationHandle `json:"-"           yaml:"-"`
	RequestID   string         `json:"requestId"   yaml:"requestId"`
	AddedRowIDs []string       `json:"addedRowIds" yaml:"addedRowIds"`
}

// RowsDeleteResult is returned by a bulk row delete.
type RowsDeleteResult struct {
	Mutation  MutationHandle `json:"-"         yaml:"-"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	RowIDs    []string       `json:"rowIds"    yaml:"rowIds"`
}

// RowMutationResult is returned by a single row update or delete.
type RowMutationResult struct {
	Mutation  MutationHandle `json:"-"         yaml:"-"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	ID        string         `json:"id"        yaml:"id"`
}

// PushButtonResult is returned when a button cell is pushed.
type PushButtonResult struct {
	Mutation  MutationHandle `json:"-"         yaml:"-"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	RowID     string         `json:"rowId"     yaml:"rowId"`
	ColumnID  string         `json:"columnId"  yaml:"columnId"`
}
