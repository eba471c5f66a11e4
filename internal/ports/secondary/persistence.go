// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
//
// Records carry dates as ISO "YYYY-MM-DD" strings and timestamps as
// "YYYY-MM-DDTHH:MM:SS" strings, the way they are stored. Absent optional
// values are empty strings or zero ids.
package secondary

import "context"

// TimestampLayout is how created_at, resolved_at and issued_at values are
// stored: local ISO 8601 to the second.
const TimestampLayout = "2006-01-02T15:04:05"

// ReportRepository defines the secondary port for report persistence.
type ReportRepository interface {
	// Create persists a report and all of its items in one transaction.
	// When submissionToken is not empty it is claimed in the same
	// transaction; an unknown or already used token fails with
	// errs.ErrDuplicateSubmission and nothing is written.
	Create(ctx context.Context, report *ReportRecord, items []*ReportItemRecord, submissionToken string) (int64, error)

	// GetByID retrieves a report by its ID.
	GetByID(ctx context.Context, id int64) (*ReportRecord, error)

	// ListItems retrieves the items of a report in insertion order.
	ListItems(ctx context.Context, reportID int64) ([]*ReportItemRecord, error)

	// GetItem retrieves a single report item by its ID.
	GetItem(ctx context.Context, itemID int64) (*ReportItemRecord, error)

	// FetchRows retrieves one row per report item, joined with its report,
	// matching the given filters.
	FetchRows(ctx context.Context, filters ReportFilters) ([]*ReportRowRecord, error)

	// ResolveItem stamps resolution fields on an item that is still an open
	// pendency. Returns false when the item was not open, in which case
	// nothing changed.
	ResolveItem(ctx context.Context, itemID int64, resolvedBy, resolutionNote, resolvedAt string) (bool, error)
}

// ReportRecord represents a report as stored in persistence.
type ReportRecord struct {
	ID         int64
	ReportDate string
	Floor      int
	Apt        int
	RoomCode   string
	Technician string
	CreatedAt  string
}

// ReportItemRecord represents one checklist line of a report.
type ReportItemRecord struct {
	ID             int64
	ReportID       int64
	ItemID         int64 // 0 for rows written before the catalog existed
	Item           string
	Status         string
	Note           string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}

// ReportRowRecord is a report item denormalized with its parent report.
type ReportRowRecord struct {
	ReportID       int64
	ReportDate     string
	Floor          int
	Apt            int
	RoomCode       string
	Technician     string
	CreatedAt      string
	ReportItemID   int64
	ItemID         int64
	Item           string
	Status         string
	Note           string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}

// PendencyState narrows report rows by resolution state.
type PendencyState int

const (
	// PendencyAny applies no resolution filter.
	PendencyAny PendencyState = iota
	// PendencyOpen keeps rows with status Problema and no resolved_at.
	PendencyOpen
	// PendencyResolved keeps rows with status Problema and resolved_at set.
	PendencyResolved
)

// ReportOrder selects the ordering of report rows.
type ReportOrder int

const (
	// OrderByFloorApt orders by report_date DESC, floor, apt, report_id DESC.
	OrderByFloorApt ReportOrder = iota
	// OrderByRoomCode orders by report_date DESC, room_code, report_id DESC.
	OrderByRoomCode
)

// ReportFilters contains filter options for querying report rows.
// DateFrom and DateTo are required and inclusive; every other field is
// ignored when zero.
type ReportFilters struct {
	DateFrom   string
	DateTo     string
	Floor      *int
	Apt        *int
	RoomCode   string
	Technician string // case-insensitive substring
	Status     string
	Pendency   PendencyState
	Order      ReportOrder
}

// ItemRepository defines the secondary port for the maintenance item catalog.
type ItemRepository interface {
	// Create persists a new catalog item. A name already present under any
	// casing fails with errs.ErrDuplicate.
	Create(ctx context.Context, item *MaintenanceItemRecord) (int64, error)

	// GetByID retrieves a catalog item by its ID.
	GetByID(ctx context.Context, id int64) (*MaintenanceItemRecord, error)

	// FindByName looks up an item by name, ignoring case.
	// Returns nil without error when there is none.
	FindByName(ctx context.Context, name string) (*MaintenanceItemRecord, error)

	// List retrieves catalog items ordered by name.
	List(ctx context.Context, activeOnly bool) ([]*MaintenanceItemRecord, error)

	// SetActive flips the active flag. Items are never deleted.
	SetActive(ctx context.Context, id int64, active bool) error
}

// MaintenanceItemRecord represents a catalog item as stored in persistence.
type MaintenanceItemRecord struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt string
}

// TicketRepository defines the secondary port for general maintenance tickets.
type TicketRepository interface {
	// Create persists a new ticket.
	Create(ctx context.Context, ticket *TicketRecord) (int64, error)

	// GetByID retrieves a ticket by its ID.
	GetByID(ctx context.Context, id int64) (*TicketRecord, error)

	// List retrieves tickets matching the given filters, newest first.
	List(ctx context.Context, filters TicketFilters) ([]*TicketRecord, error)

	// UpdateStatus changes the status of a ticket that is not resolved.
	// Returns false when the ticket was resolved, in which case nothing changed.
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)

	// Resolve sets status Resolvido and stamps resolution fields on a ticket
	// that is not resolved yet. Returns false when nothing changed.
	Resolve(ctx context.Context, id int64, resolvedBy, resolutionNote, resolvedAt string) (bool, error)
}

// TicketRecord represents a general maintenance ticket as stored in persistence.
type TicketRecord struct {
	ID             int64
	MaintDate      string
	Place          string
	Description    string
	Status         string
	Technician     string
	Note           string
	CreatedAt      string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}

// TicketFilters contains filter options for querying tickets.
type TicketFilters struct {
	DateFrom string
	DateTo   string
	Status   string
	Search   string // case-insensitive substring of place, description or technician
}

// SubmissionRepository defines the secondary port for report submission tokens.
type SubmissionRepository interface {
	// Issue stores a fresh, unused token.
	Issue(ctx context.Context, token, issuedAt string) error
}

// StoreAdapter defines the secondary port for store lifecycle operations.
type StoreAdapter interface {
	// EnsureCurrentSchema migrates the store to the latest version and
	// seeds the catalog when empty.
	EnsureCurrentSchema(ctx context.Context) (*SchemaRecord, error)

	// Backup copies the store file and returns the copy's path.
	Backup(ctx context.Context) (string, error)

	// Stats reads the schema version and row counts.
	Stats(ctx context.Context) (*StoreStatsRecord, error)
}

// SchemaRecord describes a migration run.
type SchemaRecord struct {
	FromVersion int
	ToVersion   int
	BackupPath  string
	SeededItems int
}

// StoreStatsRecord holds store-wide counters.
type StoreStatsRecord struct {
	Path           string
	Version        int
	LatestVersion  int
	Reports        int
	ReportItems    int
	OpenPendencies int
	Items          int
	ActiveItems    int
	Tickets        int
	OpenTickets    int
}
