package models

import "time"

// ProcessingJob is a write-through record of a job created by the external
// processing service, keyed by the service's own job id rather than the
// database primary key.
type ProcessingJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     string    `gorm:"column:job_id;size:100;not null;uniqueIndex" json:"jobId"`
	PilotID   string    `gorm:"column:pilot_id;size:100" json:"pilotId"`
	Location  string    `gorm:"size:255" json:"location"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProcessingResult holds the report URLs returned for a processing job.
// At most one row per job id; repeated runs upsert in place.
type ProcessingResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	JobID          string    `gorm:"column:job_id;size:100;not null;uniqueIndex" json:"jobId"`
	AnomaliesFound int       `json:"anomaliesFound"`
	ExcelURL       string    `gorm:"column:excel_url;type:text" json:"excelUrl"`
	PDFURL         string    `gorm:"column:pdf_url;type:text" json:"pdfUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FlightPath holds generated flight-path artifact URLs for a processing job.
type FlightPath struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	JobID            string    `gorm:"column:job_id;size:100;not null;uniqueIndex" json:"jobId"`
	KMZFileURL       string    `gorm:"column:kmz_file_url;type:text" json:"kmzFileUrl"`
	GeneratedPathURL string    `gorm:"column:generated_path_url;type:text" json:"generatedPathUrl"`
	GeoJSONURL       string    `gorm:"column:geojson_url;type:text" json:"geojsonUrl"`
	CreatedAt        time.Time `json:"createdAt"`
}
