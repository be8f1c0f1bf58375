package dashboard

import (
	"time"

	"github.com/rshade/pipewatch/internal/table"
)

// Pipeline statuses reported by the edge API.
const (
	PipelineRunning = "running"
	PipelineFailed  = "failed"
	PipelineQueued  = "queued"
	PipelineIdle    = "idle"
)

// Device statuses reported by the edge API.
const (
	DeviceOnline   = "online"
	DeviceOffline  = "offline"
	DeviceDegraded = "degraded"
)

// Pipeline is one data pipeline running on an edge device.
type Pipeline struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Device     string     `json:"device"`
	Status     string     `json:"status"`
	Stage      string     `json:"stage"`
	Throughput float64    `json:"throughput"`
	ErrorCount int        `json:"error_count"`
	LastRunAt  *time.Time `json:"last_run_at"`
	Owner      *string    `json:"owner"`
}

// Device is one edge device.
type Device struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Site          string     `json:"site"`
	Status        string     `json:"status"`
	Firmware      string     `json:"firmware"`
	PipelineCount int        `json:"pipeline_count"`
	LastSeen      *time.Time `json:"last_seen"`
}

// Column describes one rendered column: its sort key, header and width.
type Column struct {
	Key   string
	Title string
	Width int
}

// PipelineColumns lists pipeline columns in display order. Keys match PipelineFields.
func PipelineColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Width: 8},
		{Key: "name", Title: "Name", Width: 22},
		{Key: "device", Title: "Device", Width: 14},
		{Key: "status", Title: "Status", Width: 9},
		{Key: "stage", Title: "Stage", Width: 10},
		{Key: "throughput", Title: "Throughput", Width: 11},
		{Key: "errors", Title: "Errors", Width: 7},
		{Key: "last_run", Title: "Last Run", Width: 17},
		{Key: "owner", Title: "Owner", Width: 10},
	}
}

// DeviceColumns lists device columns in display order. Keys match DeviceFields.
func DeviceColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Width: 8},
		{Key: "name", Title: "Name", Width: 20},
		{Key: "site", Title: "Site", Width: 14},
		{Key: "status", Title: "Status", Width: 9},
		{Key: "firmware", Title: "Firmware", Width: 10},
		{Key: "pipelines", Title: "Pipelines", Width: 10},
		{Key: "last_seen", Title: "Last Seen", Width: 17},
	}
}

// PipelineFields returns the sortable pipeline fields.
func PipelineFields() table.Fields[Pipeline] {
	return table.Fields[Pipeline]{
		"id":         func(p Pipeline) any { return p.ID },
		"name":       func(p Pipeline) any { return p.Name },
		"device":     func(p Pipeline) any { return p.Device },
		"status":     func(p Pipeline) any { return p.Status },
		"stage":      func(p Pipeline) any { return p.Stage },
		"throughput": func(p Pipeline) any { return p.Throughput },
		"errors":     func(p Pipeline) any { return p.ErrorCount },
		"last_run":   func(p Pipeline) any { return p.LastRunAt },
		"owner":      func(p Pipeline) any { return p.Owner },
	}
}

// DeviceFields returns the sortable device fields.
func DeviceFields() table.Fields[Device] {
	return table.Fields[Device]{
		"id":        func(d Device) any { return d.ID },
		"name":      func(d Device) any { return d.Name },
		"site":      func(d Device) any { return d.Site },
		"status":    func(d Device) any { return d.Status },
		"firmware":  func(d Device) any { return d.Firmware },
		"pipelines": func(d Device) any { return d.PipelineCount },
		"last_seen": func(d Device) any { return d.LastSeen },
	}
}
