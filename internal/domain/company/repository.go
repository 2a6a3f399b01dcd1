package company

import (
	"context"
)

// CompanyRepository is the read-mostly source of company schedule
// configuration.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)

	// ListWithEndTime returns every company whose schedule defines an end
	// time, the population the reconciler scans.
	ListWithEndTime(ctx context.Context) ([]Company, error)

	UpdateSchedule(ctx context.Context, id string, req UpdateScheduleRequest) (Company, error)
}

// CompanyService exposes the thin schedule CRUD surface.
type CompanyService interface {
	GetSchedule(ctx context.Context) (ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
}
