package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"sellbridge/internal/csvexport"
	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

// exportPageSize bounds each history page pulled into the CSV buffer.
const exportPageSize = 500

// ExportResult describes an uploaded history export.
type ExportResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Rows   int    `json:"rows"`
}

// ExportService streams calculation history as CSV to object storage and
// returns a presigned download URL.
type ExportService interface {
	ExportHistory(ctx context.Context) (*ExportResult, error)
}

// ExportConfig holds destination settings for history exports.
type ExportConfig struct {
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
}

type exportService struct {
	calcRepo port.CalculationRepository
	storage  port.ObjectStorage
	cfg      ExportConfig
}

// NewExportService creates a new ExportService implementation.
func NewExportService(calcRepo port.CalculationRepository, storage port.ObjectStorage, cfg ExportConfig) ExportService {
	return &exportService{calcRepo: calcRepo, storage: storage, cfg: cfg}
}

func (s *exportService) ExportHistory(ctx context.Context) (*ExportResult, error) {
	var buf bytes.Buffer
	if _, err := buf.Write(csvexport.BOM); err != nil {
		return nil, fmt.Errorf("exportService: writing BOM: %w", err)
	}

	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("exportService: writing header: %w", err)
	}

	rows := 0
	for offset := 0; ; offset += exportPageSize {
		records, total, err := s.calcRepo.List(ctx, offset, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("exportService: listing records: %w", err)
		}
		if err := w.WriteRecords(records); err != nil {
			return nil, fmt.Errorf("exportService: writing records: %w", err)
		}
		rows += len(records)
		if offset+len(records) >= total || len(records) == 0 {
			break
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportService: flushing csv: %w", err)
	}

	key := s.cfg.KeyPrefix + "/" + csvexport.BuildFilename("calculation_history")
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: "text/csv",
	}); err != nil {
		return nil, fmt.Errorf("exportService: %w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("exportService: presigning %s: %w", key, err)
	}

	log.Printf("exportService: exported %d records to s3://%s/%s", rows, s.cfg.Bucket, key)
	return &ExportResult{Bucket: s.cfg.Bucket, Key: key, URL: url, Rows: rows}, nil
}
