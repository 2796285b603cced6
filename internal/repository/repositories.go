package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Admin         AdminRepository
	Client        ClientRepository
	Correspondent CorrespondentRepository
	Address       AddressRepository
	Demand        DemandRepository
	Attachment    AttachmentRepository
	ActivityLog   ActivityLogRepository
	Financial     FinancialRepository
	Report        ReportRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Admin:         NewAdminRepository(db),
		Client:        NewClientRepository(db),
		Correspondent: NewCorrespondentRepository(db),
		Address:       NewAddressRepository(db),
		Demand:        NewDemandRepository(db),
		Attachment:    NewAttachmentRepository(db),
		ActivityLog:   NewActivityLogRepository(db),
		Financial:     NewFinancialRepository(db),
		Report:        NewReportRepository(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (optionally restricted to a constraint name)
func IsUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return false
		}
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}
	return false
}

// IsForeignKeyViolation reports whether err is a Postgres referential
// integrity violation
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 50,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		q.Page = 1
	}
	return (q.Page - 1) * q.PerPage
}
