// Package handler dispatches stat_requests against a frozen catalogue,
// router, and renderer, and formats the JSON reply document.
package handler

import (
	"time"

	"go.uber.org/zap"

	"github.com/antigravity/transitcat/internal/audit"
	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/render"
	"github.com/antigravity/transitcat/internal/schema"
	"github.com/antigravity/transitcat/internal/transit"
)

const notFound = "not found"

// Handler answers stat_requests against one frozen catalogue/router/
// renderer triple.
type Handler struct {
	cat            *catalogue.Catalogue
	router         *transit.Router
	renderSettings render.Settings
	audit          *audit.Sink
	logger         *zap.Logger
}

// New builds a Handler. auditSink may be nil to disable audit recording.
func New(cat *catalogue.Catalogue, router *transit.Router, renderSettings render.Settings, auditSink *audit.Sink, logger *zap.Logger) *Handler {
	return &Handler{cat: cat, router: router, renderSettings: renderSettings, audit: auditSink, logger: logger}
}

// Answer resolves every request in reqs to a Reply, in order, tagging
// each with correlationID for logging and audit purposes.
func (h *Handler) Answer(correlationID string, reqs []schema.StatRequest) []schema.Reply {
	replies := make([]schema.Reply, len(reqs))
	for i, req := range reqs {
		replies[i] = h.answerOne(correlationID, req)
	}
	return replies
}

func (h *Handler) answerOne(correlationID string, req schema.StatRequest) schema.Reply {
	start := time.Now()
	var reply schema.Reply
	var found bool
	var target string

	switch req.Type {
	case "Stop":
		target = req.Name
		reply, found = h.answerStop(req)
	case "Bus":
		target = req.Name
		reply, found = h.answerBus(req)
	case "Route":
		target = req.From + "->" + req.To
		reply, found = h.answerRoute(req)
	case "Map":
		reply, found = h.answerMap(req), true
	default:
		reply, found = schema.Reply{RequestID: req.ID, ErrorMessage: notFound}, false
	}

	h.audit.Record(audit.Row{
		CorrelationID: correlationID,
		RequestID:     req.ID,
		QueryType:     req.Type,
		Target:        target,
		Found:         found,
		ElapsedMS:     float64(time.Since(start).Microseconds()) / 1000,
		At:            start,
	})
	return reply
}

func (h *Handler) answerStop(req schema.StatRequest) (schema.Reply, bool) {
	names, ok := h.cat.GetStopStat(req.Name)
	if !ok {
		return schema.Reply{RequestID: req.ID, ErrorMessage: notFound}, false
	}
	return schema.Reply{RequestID: req.ID, Buses: names}, true
}

func (h *Handler) answerBus(req schema.StatRequest) (schema.Reply, bool) {
	stat, ok := h.cat.GetRouteStat(req.Name)
	if !ok {
		return schema.Reply{RequestID: req.ID, ErrorMessage: notFound}, false
	}
	curvature := 0.0
	if stat.GeoLength > 0 {
		curvature = stat.RoadLength / stat.GeoLength
	}
	return schema.Reply{
		RequestID:       req.ID,
		Curvature:       curvature,
		RouteLength:     stat.RoadLength,
		StopCount:       stat.StopsCount,
		UniqueStopCount: stat.UniqueStopsCount,
	}, true
}

func (h *Handler) answerMap(req schema.StatRequest) schema.Reply {
	svg := render.Render(h.cat, h.renderSettings)
	return schema.Reply{RequestID: req.ID, Map: svg}
}

// answerRoute implements the from == to short-circuit and the "not
// found" token for an unknown stop or an unreachable itinerary.
func (h *Handler) answerRoute(req schema.StatRequest) (schema.Reply, bool) {
	itinerary, ok := h.router.FindRoute(req.From, req.To)
	if !ok {
		return schema.Reply{RequestID: req.ID, ErrorMessage: notFound}, false
	}

	items := make([]schema.ItineraryItem, len(itinerary.Items))
	for i, item := range itinerary.Items {
		switch item.Kind {
		case transit.ItemWait:
			items[i] = schema.ItineraryItem{Type: "Wait", StopName: item.StopName, Time: item.Time}
		case transit.ItemRide:
			items[i] = schema.ItineraryItem{Type: "Bus", Bus: item.RouteName, SpanCount: item.Span, Time: item.Time}
		}
	}

	return schema.Reply{RequestID: req.ID, Items: items, TotalTime: itinerary.TotalTime}, true
}
