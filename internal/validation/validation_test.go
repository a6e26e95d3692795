package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcat/internal/schema"
)

func TestDocumentRejectsOutOfRangeLatitude(t *testing.T) {
	doc := &schema.Document{
		BaseRequests: []schema.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 999, Longitude: 10},
		},
	}
	err := Document(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude")
}

func TestDocumentRejectsNegativeRoadDistance(t *testing.T) {
	doc := &schema.Document{
		BaseRequests: []schema.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 1, Longitude: 1, RoadDistances: map[string]int{"B": -5}},
		},
	}
	err := Document(doc)
	require.Error(t, err)
}

func TestDocumentRejectsUnknownStatRequestType(t *testing.T) {
	doc := &schema.Document{
		StatRequests: []schema.StatRequest{{ID: 1, Type: "Spaceship"}},
	}
	err := Document(doc)
	require.Error(t, err)
}

func TestDocumentAcceptsValidInput(t *testing.T) {
	doc := &schema.Document{
		BaseRequests: []schema.BaseRequest{
			{Type: "Stop", Name: "A", Latitude: 55.6, Longitude: 37.2},
		},
		StatRequests: []schema.StatRequest{{ID: 1, Type: "Stop", Name: "A"}},
		RoutingSettings: &schema.RoutingSettings{
			BusWaitTime: 6,
			BusVelocity: 40,
		},
		RenderSettings: &schema.RenderSettings{
			Width: 600, Height: 400, Padding: 30,
			LineWidth: 14, StopRadius: 5,
			BusLabelFontSize: 20, StopLabelFontSize: 20,
			UnderlayerColor: json.RawMessage(`"white"`),
			ColorPalette:    []json.RawMessage{json.RawMessage(`"green"`)},
		},
	}
	assert.NoError(t, Document(doc))
}
