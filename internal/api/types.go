package api

import (
	"encoding/json"
	"strings"
	"time"
)

// Health is the /health payload.
type Health struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Healthy reports whether the backend considers itself healthy.
func (h Health) Healthy() bool {
	return strings.EqualFold(strings.TrimSpace(h.Status), "healthy")
}

// SystemInfo is the /system/info payload.
type SystemInfo struct {
	Status      string         `json:"status"`
	Uptime      string         `json:"uptime"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Database    DatabaseStatus `json:"database"`
	Server      ServerStatus   `json:"server"`
}

// DatabaseStatus summarises the backing database.
type DatabaseStatus struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	TablesCount int    `json:"tables_count"`
}

// ServerStatus summarises the API host.
type ServerStatus struct {
	Hostname    string  `json:"hostname"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// Table describes one database table.
type Table struct {
	Name        string   `json:"name"`
	RowCount    int      `json:"row_count"`
	Size        string   `json:"size"`
	IndexSize   string   `json:"index_size"`
	LastUpdated string   `json:"last_updated"`
	Status      string   `json:"status"`
	Columns     []Column `json:"columns"`
}

// ParsedLastUpdated returns LastUpdated as time.Time.
func (t Table) ParsedLastUpdated() time.Time {
	return parseTime(t.LastUpdated)
}

// Column describes one table column.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// Resources is the /system/resources payload.
type Resources struct {
	CPU     CPUUsage     `json:"cpu"`
	Memory  StorageUsage `json:"memory"`
	Disk    StorageUsage `json:"disk"`
	Network NetworkUsage `json:"network"`
}

type CPUUsage struct {
	UsagePercent float64   `json:"usage_percent"`
	Cores        int       `json:"cores"`
	LoadAverage  []float64 `json:"load_average"`
}

type StorageUsage struct {
	UsagePercent float64 `json:"usage_percent"`
	TotalGB      float64 `json:"total_gb"`
	UsedGB       float64 `json:"used_gb"`
	AvailableGB  float64 `json:"available_gb"`
}

type NetworkUsage struct {
	InMbps      float64 `json:"in_mbps"`
	OutMbps     float64 `json:"out_mbps"`
	Connections int     `json:"connections"`
}

// Endpoint is the health of one backend route.
type Endpoint struct {
	Path          string  `json:"path"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	ResponseTime  float64 `json:"response_time_ms"`
	LastChecked   string  `json:"last_checked"`
	UptimePercent float64 `json:"uptime_percent"`
}

// Up reports whether the endpoint status is healthy.
func (e Endpoint) Up() bool {
	switch strings.ToLower(strings.TrimSpace(e.Status)) {
	case "healthy", "up", "ok":
		return true
	}
	return false
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Table     string `json:"table"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// ParsedTimestamp returns Timestamp as time.Time.
func (a Activity) ParsedTimestamp() time.Time {
	return parseTime(a.Timestamp)
}

// Recipe mirrors the backend recipe record.
type Recipe struct {
	ID          int64  `json:"recipe_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ParsedCreatedAt returns CreatedAt as time.Time.
func (r Recipe) ParsedCreatedAt() time.Time {
	return parseTime(r.CreatedAt)
}

// Ingredient mirrors the backend ingredient record.
type Ingredient struct {
	ID               int64  `json:"ingredient_id"`
	Name             string `json:"name"`
	IsVague          bool   `json:"is_vague"`
	VagueDescription string `json:"vague_description,omitempty"`
}

// RecipeInput is the body of a create request.
type RecipeInput struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// RecipePatch is a partial update; nil fields are left unchanged.
type RecipePatch struct {
	URL         *string `json:"url,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// IngredientInput is the body of a create request.
type IngredientInput struct {
	Name             string `json:"name"`
	IsVague          bool   `json:"is_vague"`
	VagueDescription string `json:"vague_description,omitempty"`
}

// IngredientPatch is a partial update; nil fields are left unchanged.
type IngredientPatch struct {
	Name             *string `json:"name,omitempty"`
	IsVague          *bool   `json:"is_vague,omitempty"`
	VagueDescription *string `json:"vague_description,omitempty"`
}

// WriteResult is the normalized response of a write operation. Record holds
// the returned record when the backend echoes it instead of a message.
type WriteResult struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Record  json.RawMessage `json:"-"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999", value, time.UTC); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
