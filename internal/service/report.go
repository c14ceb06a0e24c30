package service

import (
	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

type ReportService interface {
	Create(data domain.ReportCreationData) error
	GetAll(limit, offset int) ([]domain.Report, error)
}

type ReportStorage interface {
	CreateReport(data domain.ReportCreationData) error
	GetReports(limit, offset int) ([]domain.Report, error)
}

// ReportGate throttles report submission per reporter.
type ReportGate interface {
	Allow(key string) bool
}

type Report struct {
	storage ReportStorage
	gate    ReportGate
}

func NewReport(storage ReportStorage, gate ReportGate) ReportService {
	return &Report{storage, gate}
}

func (r *Report) Create(data domain.ReportCreationData) error {
	if !r.gate.Allow(data.ReporterIp) {
		return internal_errors.TooManyRequests("Please wait before you do that again")
	}
	if data.Level < 0 {
		return internal_errors.Validation("Invalid report level")
	}
	return r.storage.CreateReport(data)
}

const maxReportPage = 200

func (r *Report) GetAll(limit, offset int) ([]domain.Report, error) {
	if limit <= 0 || limit > maxReportPage {
		limit = maxReportPage
	}
	if offset < 0 {
		offset = 0
	}
	return r.storage.GetReports(limit, offset)
}
