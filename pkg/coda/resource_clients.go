package coda

import (
	"context"
	"time"
)

// Handle is a bound reference to one remote entity plus its last known
// snapshot. Constructing a handle never performs I/O. Get and Refresh fetch
// the entity and replace the cached snapshot; a failed fetch leaves it as is.
type Handle[T any] interface {
	// ID is the identifier (or name) the handle is bound to. It never changes.
	ID() string

	// Snapshot returns a copy of the cached snapshot, or nil before the
	// first successful fetch or Set.
	Snapshot() *T

	// Hydrated reports whether a snapshot is cached.
	Hydrated() bool

	Get(ctx context.Context) (*T, error)
	Refresh(ctx context.Context) (*T, error)
}

// MutationHandle tracks one asynchronous write by its request id.
type MutationHandle interface {
	RequestID() string

	// Status performs a single status request.
	Status(ctx context.Context) (*MutationStatus, error)

	// Wait polls Status at most maxAttempts times, sleeping interval between
	// attempts. It returns true as soon as the mutation is reported complete
	// and false, with a nil error, when the attempts run out.
	Wait(ctx context.Context, interval time.Duration, maxAttempts int) (bool, error)

	// WaitDefault waits with the default interval and attempt budget.
	WaitDefault(ctx context.Context) (bool, error)
}

// DocsClient is the root docs collection.
type DocsClient interface {
	List(ctx context.Context, opts *DocListOptions) (*ListResponse[DocHandle], error)
	Create(ctx context.Context, req *DocCreateRequest) (DocHandle, error)
	Get(ctx context.Context, docID string) (DocHandle, error)
	Handle(docID string) DocHandle
	Delete(ctx context.Context, docID string) error
}

// DocHandle is a bound doc.
type DocHandle interface {
	Handle[Doc]

	// Set replaces the cached snapshot with a copy of doc.
	Set(doc *Doc) DocHandle
	// SetFrom copies the cached snapshot of another handle.
	SetFrom(other DocHandle) DocHandle

	Delete(ctx context.Context) error
	ShareMetadata(ctx context.Context) (*ACLMetadata, error)
	Publish(ctx context.Context, req *PublishRequest) (MutationHandle, error)
	Unpublish(ctx context.Context) error

	Pages() PagesClient
	Tables() TablesClient
	Controls() ControlsClient
	Formulas() FormulasClient
	Permissions() PermissionsClient
	Automations() AutomationsClient
}

// PagesClient lists and resolves the pages of a doc.
type PagesClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[PageHandle], error)
	Get(ctx context.Context, pageIDOrName string) (PageHandle, error)
	Handle(pageIDOrName string) PageHandle

	// Tree loads every page of the doc and arranges them by parent.
	Tree(ctx context.Context) (*PageTree, error)
}

// PageHandle is a bound page.
type PageHandle interface {
	Handle[Page]

	DocID() string
	Set(page *Page) PageHandle
	SetFrom(other PageHandle) PageHandle

	Update(ctx context.Context, req *PageUpdateRequest) (MutationHandle, error)

	// Parent and Children bind handles to the pages referenced by the cached
	// snapshot. They perform no I/O and the returned handles are not hydrated.
	Parent() PageHandle
	Children() []PageHandle
}

// TablesClient lists and resolves the tables and views of a doc.
type TablesClient interface {
	List(ctx context.Context, opts *TableListOptions) (*ListResponse[TableHandle], error)
	Get(ctx context.Context, tableIDOrName string) (TableHandle, error)
	Handle(tableIDOrName string) TableHandle
}

// TableHandle is a bound table or view.
type TableHandle interface {
	Handle[Table]

	DocID() string
	Set(table *Table) TableHandle
	SetFrom(other TableHandle) TableHandle

	Rows() RowsClient
	Columns() ColumnsClient
}

// ColumnsClient lists and resolves the columns of a table.
type ColumnsClient interface {
	List(ctx context.Context, opts *ColumnListOptions) (*ListResponse[ColumnHandle], error)
	Get(ctx context.Context, columnIDOrName string) (ColumnHandle, error)
	Handle(columnIDOrName string) ColumnHandle
}

// ColumnHandle is a bound column.
type ColumnHandle interface {
	Handle[Column]

	DocID() string
	TableIDOrName() string
	Set(column *Column) ColumnHandle
	SetFrom(other ColumnHandle) ColumnHandle
}

// RowsClient lists, writes and resolves the rows of a table.
type RowsClient interface {
	List(ctx context.Context, opts *RowListOptions) (*ListResponse[RowHandle], error)
	Get(ctx context.Context, rowIDOrName string, opts *RowGetOptions) (RowHandle, error)
	Handle(rowIDOrName string, opts *RowGetOptions) RowHandle

	// Upsert inserts rows, or updates rows matching the request's key columns.
	Upsert(ctx context.Context, req *RowUpsertRequest, disableParsing bool) (*RowsUpsertResult, error)
	Delete(ctx context.Context, rowIDs []string) (*RowsDeleteResult, error)
}

// RowHandle is a bound row. The value format and column addressing chosen at
// construction apply to every fetch.
type RowHandle interface {
	Handle[Row]

	DocID() string
	TableIDOrName() string
	Set(row *Row) RowHandle
	SetFrom(other RowHandle) RowHandle

	Update(ctx context.Context, req *RowUpdateRequest, disableParsing bool) (*RowMutationResult, error)
	Delete(ctx context.Context) (*RowMutationResult, error)
	PushButton(ctx context.Context, columnIDOrName string) (*PushButtonResult, error)
}

// ControlsClient lists and resolves the controls of a doc.
type ControlsClient interface {
	List(ctx context.Context, opts *SortedListOptions) (*ListResponse[ControlHandle], error)
	Get(ctx context.Context, controlIDOrName string) (ControlHandle, error)
	Handle(controlIDOrName string) ControlHandle
}

// ControlHandle is a bound control.
type ControlHandle interface {
	Handle[Control]

	DocID() string
	Set(control *Control) ControlHandle
	SetFrom(other ControlHandle) ControlHandle
}

// FormulasClient lists and resolves the named formulas of a doc.
type FormulasClient interface {
	List(ctx context.Context, opts *SortedListOptions) (*ListResponse[FormulaHandle], error)
	Get(ctx context.Context, formulaIDOrName string) (FormulaHandle, error)
	Handle(formulaIDOrName string) FormulaHandle
}

// FormulaHandle is a bound formula.
type FormulaHandle interface {
	Handle[Formula]

	DocID() string
	Set(formula *Formula) FormulaHandle
	SetFrom(other FormulaHandle) FormulaHandle
}

// PermissionsClient manages the sharing settings of a doc.
type PermissionsClient interface {
	List(ctx context.Context, opts *ListOptions) (*ListResponse[Permission], error)
	Add(ctx context.Context, req *PermissionAddRequest) error
	Delete(ctx context.Context, permissionID string) error
}

// AutomationsClient triggers webhook-invoked automations of a doc.
type AutomationsClient interface {
	Trigger(ctx context.Context, ruleID string, payload interface{}) (MutationHandle, error)
}
