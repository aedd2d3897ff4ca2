package nws

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Alert is one CAP alert record as returned by the api.weather.gov
// /alerts/{id} endpoint (GeoJSON feature shape).
type Alert struct {
	Context    []ContextElement `json:"@context"`
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Geometry   json.RawMessage  `json:"geometry"`
	Properties Properties       `json:"properties"`
}

// Properties carries the CAP payload of an alert.
type Properties struct {
	AtID          string      `json:"@id"`
	AtType        string      `json:"@type"`
	ID            string      `json:"id"`
	AreaDesc      string      `json:"areaDesc"`
	Geocode       Geocode     `json:"geocode"`
	AffectedZones []string    `json:"affectedZones"`
	References    []Reference `json:"references"`
	Sent          string      `json:"sent"`
	Effective     string      `json:"effective"`
	Onset         string      `json:"onset"`
	Expires       string      `json:"expires"`
	Ends          string      `json:"ends"`
	Status        string      `json:"status"`
	MessageType   string      `json:"messageType"`
	Category      string      `json:"category"`
	Severity      string      `json:"severity"`
	Certainty     string      `json:"certainty"`
	Urgency       string      `json:"urgency"`
	Event         string      `json:"event"`
	Sender        string      `json:"sender"`
	SenderName    string      `json:"senderName"`
	Headline      string      `json:"headline"`
	Description   string      `json:"description"`
	Instruction   string      `json:"instruction"`
	Response      string      `json:"response"`
	Parameters    Parameters  `json:"parameters"`
}

// Geocode lists the SAME and UGC codes covered by an alert.
type Geocode struct {
	SAME []string `json:"SAME"`
	UGC  []string `json:"UGC"`
}

// Parameters carries the CAP protocol parameter lists. expiredReferences
// is absent on alerts that supersede nothing.
type Parameters struct {
	AWIPSIdentifier   []string `json:"AWIPSidentifier"`
	WMOIdentifier     []string `json:"WMOidentifier"`
	NWSHeadline       []string `json:"NWSheadline"`
	BlockChannel      []string `json:"BLOCKCHANNEL"`
	VTEC              []string `json:"VTEC"`
	EventEndingTime   []string `json:"eventEndingTime"`
	ExpiredReferences []string `json:"expiredReferences,omitempty"`
}

// Reference points at a related or prior alert.
type Reference struct {
	AtID       string `json:"@id"`
	Identifier string `json:"identifier"`
	Sender     string `json:"sender"`
	Sent       string `json:"sent"`
}

// ContextClass is the structured JSON-LD context variant.
type ContextClass struct {
	Version string `json:"@version"`
	Wx      string `json:"wx"`
	Vocab   string `json:"@vocab"`
}

// ContextElement is one entry of the @context array, which mixes bare URI
// strings with a structured context object. Exactly one of Class and URI
// is set after a successful decode.
type ContextElement struct {
	Class *ContextClass
	URI   string
}

// UnmarshalJSON tries the structured form first and falls back to a bare
// string.
func (c *ContextElement) UnmarshalJSON(data []byte) error {
	var class ContextClass
	if err := json.Unmarshal(data, &class); err == nil {
		c.Class = &class
		c.URI = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return eris.Wrap(err, "nws: @context element is neither object nor string")
	}
	c.Class = nil
	c.URI = s
	return nil
}

// MarshalJSON emits whichever variant is set.
func (c ContextElement) MarshalJSON() ([]byte, error) {
	if c.Class != nil {
		return json.Marshal(c.Class)
	}
	return json.Marshal(c.URI)
}
