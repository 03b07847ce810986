package coda

// ResourceType is the discriminator Coda puts in the "type" field of every object.
type ResourceType string

// Resource types returned by the API.
const (
	ResourceTypeACLMetadata    ResourceType = "aclMetadata"
	ResourceTypeACLPermissions ResourceType = "aclPermissions"
	ResourceTypeAPILink        ResourceType = "apiLink"
	ResourceTypeAutomation     ResourceType = "automation"
	ResourceTypeColumn         ResourceType = "column"
	ResourceTypeControl        ResourceType = "control"
	ResourceTypeDoc            ResourceType = "doc"
	ResourceTypeFolder         ResourceType = "folder"
	ResourceTypeFormula        ResourceType = "formula"
	ResourceTypeMutationStatus ResourceType = "mutationStatus"
	ResourceTypePage           ResourceType = "page"
	ResourceTypeRow            ResourceType = "row"
	ResourceTypeTable          ResourceType = "table"
	ResourceTypeUser           ResourceType = "user"
	ResourceTypeWorkspace      ResourceType = "workspace"
)

// Ref is the reference shape shared by every nested resource pointer.
type Ref struct {
	ID          string       `json:"id"                    yaml:"id"`
	Type        ResourceType `json:"type"                  yaml:"type"`
	Href        string       `json:"href,omitempty"        yaml:"href,omitempty"`
	BrowserLink string       `json:"browserLink,omitempty" yaml:"browserLink,omitempty"`
	Name        string       `json:"name,omitempty"        yaml:"name,omitempty"`
}

// DocRef points at a doc.
type DocRef = Ref

// PageRef points at a page.
type PageRef = Ref

// ColumnRef points at a column.
type ColumnRef = Ref

// FolderRef points at a folder.
type FolderRef = Ref

// TableRef points at a table or view.
type TableRef struct {
	Ref `yaml:",inline"`

	TableType TableType `json:"tableType,omitempty" yaml:"tableType,omitempty"`
	Parent    *PageRef  `json:"parent,omitempty"    yaml:"parent,omitempty"`
}

// WorkspaceRef points at a workspace.
type WorkspaceRef struct {
	ID             string       `json:"id"                       yaml:"id"`
	Type           ResourceType `json:"type"                     yaml:"type"`
	OrganizationID string       `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
	BrowserLink    string       `json:"browserLink,omitempty"    yaml:"browserLink,omitempty"`
	Name           string       `json:"name,omitempty"           yaml:"name,omitempty"`
}

// Icon describes a doc or page icon.
type Icon struct {
	Name        string `json:"name"        yaml:"name"`
	Type        string `json:"type"        yaml:"type"`
	BrowserLink string `json:"browserLink" yaml:"browserLink"`
}

// Image describes a page cover image.
type Image struct {
	BrowserLink string  `json:"browserLink"      yaml:"browserLink"`
	Type        string  `json:"type,omitempty"   yaml:"type,omitempty"`
	Width       float64 `json:"width,omitempty"  yaml:"width,omitempty"`
	Height      float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// ListResponse is the envelope of every paginated list endpoint. NextSyncToken
// is only populated by row listings.
type ListResponse[T any] struct {
	Items         []T    `json:"items"                   yaml:"items"`
	Href          string `json:"href,omitempty"          yaml:"href,omitempty"`
	NextPageToken string `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty"  yaml:"nextPageLink,omitempty"`
	NextSyncToken string `json:"nextSyncToken,omitempty" yaml:"nextSyncToken,omitempty"`
}

// HasNextPage reports whether another page can be requested with NextPageToken.
func (l *ListResponse[T]) HasNextPage() bool {
	return l != nil && l.NextPageToken != ""
}

// TableType distinguishes base tables from views.
type TableType string

const (
	TableTypeTable TableType = "table"
	TableTypeView  TableType = "view"
)

// TableLayout is the display layout of a table.
type TableLayout string

const (
	TableLayoutDefault      TableLayout = "default"
	TableLayoutAreaChart    TableLayout = "areaChart"
	TableLayoutBarChart     TableLayout = "barChart"
	TableLayoutBubbleChart  TableLayout = "bubbleChart"
	TableLayoutCalendar     TableLayout = "calendar"
	TableLayoutCard         TableLayout = "card"
	TableLayoutDetail       TableLayout = "detail"
	TableLayoutForm         TableLayout = "form"
	TableLayoutGanttChart   TableLayout = "ganttChart"
	TableLayoutLineChart    TableLayout = "lineChart"
	TableLayoutMasterDetail TableLayout = "masterDetail"
	TableLayoutPieChart     TableLayout = "pieChart"
	TableLayoutScatterChart TableLayout = "scatterChart"
	TableLayoutSlide        TableLayout = "slide"
	TableLayoutWordCloud    TableLayout = "wordCloud"
)

// SortDirection is the direction of a table sort.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// ColumnType is the format type of a column.
type ColumnType string

const (
	ColumnTypeText        ColumnType = "text"
	ColumnTypePerson      ColumnType = "person"
	ColumnTypeLookup      ColumnType = "lookup"
	ColumnTypeNumber      ColumnType = "number"
	ColumnTypePercent     ColumnType = "percent"
	ColumnTypeCurrency    ColumnType = "currency"
	ColumnTypeDate        ColumnType = "date"
	ColumnTypeDateTime    ColumnType = "dateTime"
	ColumnTypeTime        ColumnType = "time"
	ColumnTypeDuration    ColumnType = "duration"
	ColumnTypeEmail       ColumnType = "email"
	ColumnTypeLink        ColumnType = "link"
	ColumnTypeSlider      ColumnType = "slider"
	ColumnTypeScale       ColumnType = "scale"
	ColumnTypeImage       ColumnType = "image"
	ColumnTypeAttachments ColumnType = "attachments"
	ColumnTypeButton      ColumnType = "button"
	ColumnTypeCheckbox    ColumnType = "checkbox"
	ColumnTypeSelect      ColumnType = "select"
	ColumnTypePackObject  ColumnType = "packObject"
	ColumnTypeReaction    ColumnType = "reaction"
	ColumnTypeCanvas      ColumnType = "canvas"
	ColumnTypeOther       ColumnType = "other"
)

// ControlType is the kind of a doc control.
type ControlType string

const (
	ControlTypeAutocomplete ControlType = "autocomplete"
	ControlTypeButton       ControlType = "button"
	ControlTypeCheckbox     ControlType = "checkbox"
	ControlTypeDatePicker   ControlType = "datePicker"
	ControlTypeDateRange    ControlType = "dateRangePicker"
	ControlTypeLookup       ControlType = "lookup"
	ControlTypeMultiselect  ControlType = "multiselect"
	ControlTypeSelect       ControlType = "select"
	ControlTypeScale        ControlType = "scale"
	ControlTypeSlider       ControlType = "slider"
	ControlTypeReaction     ControlType = "reaction"
	ControlTypeTextbox      ControlType = "textbox"
)

// AccessType is the level of access a permission grants.
type AccessType string

const (
	AccessReadOnly AccessType = "readonly"
	AccessWrite    AccessType = "write"
	AccessComment  AccessType = "comment"
	AccessNone     AccessType = "none"
)

// PrincipalType is the kind of grantee of a permission.
type PrincipalType string

const (
	PrincipalEmail  PrincipalType = "email"
	PrincipalDomain PrincipalType = "domain"
	PrincipalAnyone PrincipalType = "anyone"
)

// PublishMode is how a published doc may be interacted with.
type PublishMode string

const (
	PublishModeView PublishMode = "view"
	PublishModePlay PublishMode = "play"
	PublishModeEdit PublishMode = "edit"
)

// RowSortBy is the ordering applied to a row listing.
type RowSortBy string

const (
	RowSortCreatedAt RowSortBy = "createdAt"
	RowSortNatural   RowSortBy = "natural"
	RowSortUpdatedAt RowSortBy = "updatedAt"
)

// RowValueFormat selects how cell values are rendered in row responses.
type RowValueFormat string

const (
	ValueFormatSimple          RowValueFormat = "simple"
	ValueFormatSimpleWithArray RowValueFormat = "simpleWithArrays"
	ValueFormatRich            RowValueFormat = "rich"
)
