package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
	"sellbridge/internal/service"
	"sellbridge/mocks"
)

func exportRecords(n int) []domain.CalculationRecord {
	records := make([]domain.CalculationRecord, n)
	for i := range records {
		records[i] = domain.CalculationRecord{
			ID:                 uuid.New(),
			DestinationCountry: "US",
			Category:           "general",
			Status:             domain.CalculationStatusFailed,
			ErrorCode:          "no_shipping_policy",
			Input:              []byte(`{}`),
			CreatedAt:          time.Now(),
		}
	}
	return records
}

func TestExportHistory_UploadsCSVAndPresigns(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(calcRepo, storage, service.ExportConfig{
		Bucket:        "exports",
		KeyPrefix:     "calculations",
		PresignExpiry: 3600,
	})

	calcRepo.On("List", mock.Anything, 0, 500).Return(exportRecords(3), 3, nil)

	var uploaded bytes.Buffer
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		_, err := io.Copy(&uploaded, in.Body)
		return err == nil && in.Bucket == "exports" && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{Location: "https://exports.s3.amazonaws.com/x"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "exports", mock.Anything, int64(3600)).
		Return("https://signed.example/x", nil)

	result, err := svc.ExportHistory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "exports", result.Bucket)
	assert.Contains(t, result.Key, "calculations/")
	assert.Equal(t, "https://signed.example/x", result.URL)
	assert.Equal(t, 3, result.Rows)

	// BOM, then a header row and three data rows.
	raw := uploaded.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestExportHistory_PagesThroughHistory(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(calcRepo, storage, service.ExportConfig{
		Bucket: "exports", KeyPrefix: "calculations", PresignExpiry: 3600,
	})

	calcRepo.On("List", mock.Anything, 0, 500).Return(exportRecords(500), 700, nil)
	calcRepo.On("List", mock.Anything, 500, 500).Return(exportRecords(200), 700, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://signed.example/x", nil)

	result, err := svc.ExportHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 700, result.Rows)
	calcRepo.AssertNumberOfCalls(t, "List", 2)
}

func TestExportHistory_UploadFailure(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(calcRepo, storage, service.ExportConfig{
		Bucket: "exports", KeyPrefix: "calculations", PresignExpiry: 3600,
	})

	calcRepo.On("List", mock.Anything, 0, 500).Return(exportRecords(1), 1, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.ExportHistory(context.Background())
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
