package utils

import (
	"fmt"

	"github.com/Skisteve007/Clean-Check/internal/models"
)

func ExportData(logs []models.AuditLog) error {
	for _, log := range logs {
		//change with actual calls
		fmt.Println(log.Timestamp, log.Entity, log.Action)
	}
	return nil
}
