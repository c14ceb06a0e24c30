package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

func TestReportCreate(t *testing.T) {
	data := domain.ReportCreationData{Board: "b", PostNumber: 3, Level: 1, ReporterIp: "203.0.113.7"}

	t.Run("allowed report reaches storage", func(t *testing.T) {
		var created domain.ReportCreationData
		storage := &MockReportStorage{
			CreateReportFunc: func(d domain.ReportCreationData) error {
				created = d
				return nil
			},
		}
		service := NewReport(storage, &MockReportGate{})

		require.NoError(t, service.Create(data))
		assert.Equal(t, data, created)
	})

	t.Run("throttled reporter gets 429", func(t *testing.T) {
		storage := &MockReportStorage{
			CreateReportFunc: func(d domain.ReportCreationData) error {
				t.Fatal("must not reach storage")
				return nil
			},
		}
		gate := &MockReportGate{AllowFunc: func(key string) bool { return false }}
		service := NewReport(storage, gate)

		err := service.Create(data)
		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, internal_errors.StatusCode(err))
		assert.Equal(t, "Please wait before you do that again", err.Error())
	})

	t.Run("gate is keyed by reporter ip", func(t *testing.T) {
		var gateKey string
		gate := &MockReportGate{AllowFunc: func(key string) bool {
			gateKey = key
			return true
		}}
		service := NewReport(&MockReportStorage{}, gate)

		require.NoError(t, service.Create(data))
		assert.Equal(t, "203.0.113.7", gateKey)
	})

	t.Run("negative level rejected", func(t *testing.T) {
		service := NewReport(&MockReportStorage{}, &MockReportGate{})
		bad := data
		bad.Level = -1
		err := service.Create(bad)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})
}

func TestReportGetAll(t *testing.T) {
	var gotLimit, gotOffset int
	storage := &MockReportStorage{
		GetReportsFunc: func(limit, offset int) ([]domain.Report, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	service := NewReport(storage, &MockReportGate{})

	_, err := service.GetAll(0, -5)
	require.NoError(t, err)
	assert.Equal(t, maxReportPage, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = service.GetAll(10, 20)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)
}
