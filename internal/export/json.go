package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/timeclock/internal/models"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
	LeaveDays  []jsonLeave `json:"leave_days,omitempty"`
}

type jsonEntry struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time,omitempty"`
	PauseSeconds int64   `json:"pause_seconds"`
	Pause        string  `json:"pause"`
	Hours        float64 `json:"hours"`
	State        string  `json:"state"`
	Description  string  `json:"description,omitempty"`
}

type jsonLeave struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

func ToJSON(entries []models.TimeEntry, leaveDays []models.LeaveDay, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		endStr := ""
		if e.EndTime != nil {
			endStr = e.EndTime.Local().Format(time.RFC3339)
		}

		export.Entries = append(export.Entries, jsonEntry{
			ID:           e.ID,
			Date:         e.Date,
			StartTime:    e.StartTime.Local().Format(time.RFC3339),
			EndTime:      endStr,
			PauseSeconds: e.PauseSeconds,
			Pause:        formatDuration(e.PauseSeconds),
			Hours:        e.DurationHours(),
			State:        e.State().String(),
			Description:  e.Description,
		})
	}

	for _, d := range leaveDays {
		export.LeaveDays = append(export.LeaveDays, jsonLeave{
			Date:        d.Date,
			Type:        string(d.Type),
			Description: d.Description,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
