package dashboard

import "time"

// mockEpoch anchors mock timestamps so sorting by time is stable across runs.
var mockEpoch = time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // Fixed reference time.

func at(minutesAgo int) *time.Time {
	t := mockEpoch.Add(-time.Duration(minutesAgo) * time.Minute)
	return &t
}

func owner(name string) *string {
	return &name
}

// MockPipelines returns the static pipeline dataset shown when no server is reachable.
func MockPipelines() []Pipeline {
	return []Pipeline{
		{ID: "pl-001", Name: "Sensor Ingest", Device: "edge-berlin-01", Status: PipelineRunning, Stage: "ingest", Throughput: 1284.5, ErrorCount: 0, LastRunAt: at(1), Owner: owner("data-eng")},
		{ID: "pl-002", Name: "Video Transcode", Device: "edge-berlin-02", Status: PipelineRunning, Stage: "transform", Throughput: 86.2, ErrorCount: 3, LastRunAt: at(2), Owner: owner("media")},
		{ID: "pl-003", Name: "Anomaly Detection", Device: "edge-oslo-01", Status: PipelineFailed, Stage: "inference", Throughput: 0, ErrorCount: 41, LastRunAt: at(37), Owner: owner("ml-ops")},
		{ID: "pl-004", Name: "Log Shipper", Device: "edge-oslo-01", Status: PipelineRunning, Stage: "export", Throughput: 5420, ErrorCount: 1, LastRunAt: at(0), Owner: nil},
		{ID: "pl-005", Name: "Firmware Telemetry", Device: "edge-lisbon-01", Status: PipelineQueued, Stage: "ingest", Throughput: 0, ErrorCount: 0, LastRunAt: nil, Owner: owner("platform")},
		{ID: "pl-006", Name: "Energy Metering", Device: "edge-lisbon-02", Status: PipelineRunning, Stage: "aggregate", Throughput: 312.75, ErrorCount: 0, LastRunAt: at(5), Owner: owner("facilities")},
		{ID: "pl-007", Name: "Édge Cache Warmup", Device: "edge-berlin-01", Status: PipelineIdle, Stage: "export", Throughput: 0, ErrorCount: 0, LastRunAt: at(240), Owner: nil},
		{ID: "pl-008", Name: "Camera Frames", Device: "edge-berlin-02", Status: PipelineFailed, Stage: "ingest", Throughput: 12.4, ErrorCount: 7, LastRunAt: at(15), Owner: owner("media")},
		{ID: "pl-009", Name: "Door Access Events", Device: "edge-oslo-02", Status: PipelineRunning, Stage: "transform", Throughput: 44.1, ErrorCount: 0, LastRunAt: at(3), Owner: owner("security")},
		{ID: "pl-010", Name: "HVAC Control Loop", Device: "edge-lisbon-02", Status: PipelineQueued, Stage: "inference", Throughput: 0, ErrorCount: 2, LastRunAt: nil, Owner: owner("facilities")},
		{ID: "pl-011", Name: "Barcode Scans", Device: "edge-oslo-02", Status: PipelineRunning, Stage: "ingest", Throughput: 198.6, ErrorCount: 0, LastRunAt: at(1), Owner: owner("logistics")},
		{ID: "pl-012", Name: "Weather Station", Device: "edge-lisbon-01", Status: PipelineRunning, Stage: "aggregate", Throughput: 3.2, ErrorCount: 0, LastRunAt: at(10), Owner: nil},
	}
}

// MockDevices returns the static device dataset shown when no server is reachable.
func MockDevices() []Device {
	return []Device{
		{ID: "dv-01", Name: "edge-berlin-01", Site: "Berlin", Status: DeviceOnline, Firmware: "4.2.1", PipelineCount: 2, LastSeen: at(0)},
		{ID: "dv-02", Name: "edge-berlin-02", Site: "Berlin", Status: DeviceDegraded, Firmware: "4.1.9", PipelineCount: 2, LastSeen: at(1)},
		{ID: "dv-03", Name: "edge-oslo-01", Site: "Oslo", Status: DeviceOnline, Firmware: "4.2.1", PipelineCount: 2, LastSeen: at(0)},
		{ID: "dv-04", Name: "edge-oslo-02", Site: "Oslo", Status: DeviceOnline, Firmware: "4.2.0", PipelineCount: 2, LastSeen: at(2)},
		{ID: "dv-05", Name: "edge-lisbon-01", Site: "Lisbon", Status: DeviceOffline, Firmware: "3.9.4", PipelineCount: 2, LastSeen: at(180)},
		{ID: "dv-06", Name: "edge-lisbon-02", Site: "Lisbon", Status: DeviceOnline, Firmware: "4.2.1", PipelineCount: 2, LastSeen: at(0)},
		{ID: "dv-07", Name: "edge-spare-01", Site: "Warehouse", Status: DeviceOffline, Firmware: "3.8.0", PipelineCount: 0, LastSeen: nil},
	}
}
