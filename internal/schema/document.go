// Package schema defines the JSON request/reply document shapes the
// request layer exchanges with callers, independent of how they are
// transported (stdin/stdout for the CLI, an HTTP body for the serve
// subcommand).
package schema

import "encoding/json"

// Document is the top-level request document: every section is
// optional so that make_base and process_requests can each populate
// only the sections they need.
type Document struct {
	BaseRequests         []BaseRequest         `json:"base_requests,omitempty" validate:"dive"`
	StatRequests         []StatRequest         `json:"stat_requests,omitempty" validate:"dive"`
	RenderSettings       *RenderSettings       `json:"render_settings,omitempty"`
	RoutingSettings      *RoutingSettings      `json:"routing_settings,omitempty"`
	SerializationSettings *SerializationSettings `json:"serialization_settings,omitempty"`
}

// SerializationSettings names the persisted-artifact file path.
type SerializationSettings struct {
	File string `json:"file" validate:"required"`
}

// BaseRequest is one ingestion instruction: either a Stop or a Bus
// (route). Type discriminates which optional fields are populated.
type BaseRequest struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`

	Name string `json:"name" validate:"required"`

	// Stop fields.
	Latitude      float64        `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude     float64        `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RoadDistances map[string]int `json:"road_distances,omitempty" validate:"omitempty,dive,gte=0"`

	// Bus fields.
	Stops       []string `json:"stops,omitempty"`
	IsRoundtrip bool     `json:"is_roundtrip,omitempty"`
}

// StatRequest is one query. Type discriminates which optional fields
// the requester must supply: Stop/Bus carry Name; Route carries
// From/To; Map carries nothing extra.
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type" validate:"required,oneof=Stop Bus Route Map"`

	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// RenderSettings mirrors the settings enumerated in §4.3: canvas
// geometry, stroke widths, label typography, and the color palette.
// Colors are decoded with RawMessage so ingest.RenderSettings can resolve
// the named/RGB/RGBA tagged union after validation.
type RenderSettings struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Padding float64 `json:"padding" validate:"gte=0"`

	LineWidth  float64 `json:"line_width" validate:"gt=0"`
	StopRadius float64 `json:"stop_radius" validate:"gt=0"`

	BusLabelFontSize int        `json:"bus_label_font_size" validate:"gt=0"`
	BusLabelOffset   [2]float64 `json:"bus_label_offset"`

	StopLabelFontSize int        `json:"stop_label_font_size" validate:"gt=0"`
	StopLabelOffset   [2]float64 `json:"stop_label_offset"`

	UnderlayerColor json.RawMessage `json:"underlayer_color" validate:"required"`
	UnderlayerWidth float64         `json:"underlayer_width" validate:"gte=0"`

	ColorPalette []json.RawMessage `json:"color_palette" validate:"required,min=1"`
}

// RoutingSettings mirrors §4.4's (bus_wait_time, bus_velocity) pair.
type RoutingSettings struct {
	BusWaitTime float64 `json:"bus_wait_time" validate:"gt=0"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0"`
}

// Reply is one element of the process_requests output array.
type Reply struct {
	RequestID int `json:"request_id"`

	ErrorMessage string `json:"error_message,omitempty"`

	Buses []string `json:"buses,omitempty"`

	Curvature      float64 `json:"curvature,omitempty"`
	RouteLength    float64 `json:"route_length,omitempty"`
	StopCount      int     `json:"stop_count,omitempty"`
	UniqueStopCount int    `json:"unique_stop_count,omitempty"`

	Map string `json:"map,omitempty"`

	Items     []ItineraryItem `json:"items"`
	TotalTime float64         `json:"total_time,omitempty"`
}

// ItineraryItem is one Wait or Bus step of a Route reply.
type ItineraryItem struct {
	Type string `json:"type"`

	StopName string `json:"stop_name,omitempty"`

	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}
