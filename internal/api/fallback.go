package api

import "net/http"

// Fallback payloads match the success shapes with zeroed values so views
// render the same way online and offline.

const statusOffline = "offline"

func fallbackHealth() Health {
	return Health{Status: statusOffline, Version: "N/A", Environment: statusOffline}
}

func fallbackSystemInfo() SystemInfo {
	return SystemInfo{
		Status:      statusOffline,
		Uptime:      statusOffline,
		Version:     "N/A",
		Environment: statusOffline,
		Database:    DatabaseStatus{Status: statusOffline},
		Server:      ServerStatus{},
	}
}

// FallbackTables is the table list shown when the backend is unreachable.
func FallbackTables() []Table {
	return []Table{
		{Name: "recipes", RowCount: 0, Size: "0 MB", IndexSize: "0 MB", Status: "inactive", Columns: []Column{}},
		{Name: "ingredients", RowCount: 0, Size: "0 MB", IndexSize: "0 MB", Status: "inactive", Columns: []Column{}},
	}
}

func fallbackResources() Resources {
	return Resources{
		CPU: CPUUsage{LoadAverage: []float64{0, 0, 0}},
	}
}

// FallbackEndpoints lists the routes this client reads, all marked down.
func (c *Client) FallbackEndpoints() []Endpoint {
	paths := []string{
		"/health",
		c.catalogPrefix + "/recipes/",
		c.catalogPrefix + "/ingredients/",
		"/system/info",
		"/system/database/tables",
		"/system/resources",
	}
	endpoints := make([]Endpoint, 0, len(paths))
	for _, path := range paths {
		endpoints = append(endpoints, Endpoint{Path: path, Method: http.MethodGet, Status: "down"})
	}
	return endpoints
}

func emptyPage[T any](req ListRequest) func() Page[T] {
	return func() Page[T] {
		return Page[T]{Items: []T{}, Offset: req.Offset, Limit: req.limit()}
	}
}
