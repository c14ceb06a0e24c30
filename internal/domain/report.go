package domain

import (
	"time"
)

type Report struct {
	Id         int64       `json:"id"`
	PostUid    PostUid     `json:"-"`
	PostNumber PostNumber  `json:"postNumber"`
	Board      BoardKey    `json:"board"`
	Level      ReportLevel `json:"level"`
	ReporterIp string      `json:"-"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type ReportCreationData struct {
	Board      BoardKey
	PostNumber PostNumber
	Level      ReportLevel
	ReporterIp string
}
