package devicesim

import (
	"encoding/xml"
	"fmt"
)

const (
	dialDeviceType  = "urn:dial-multiscreen-org:device:dial:1"
	dialServiceType = "urn:dial-multiscreen-org:service:dial:1"
)

type Behavior string

const (
	// BehaviorNormal serves a complete, valid descriptor.
	BehaviorNormal Behavior = "normal"
	// BehaviorMissingHeader omits the Application-URL header.
	BehaviorMissingHeader Behavior = "missing-header"
	// BehaviorNotFound answers the descriptor route with 404.
	BehaviorNotFound Behavior = "not-found"
	// BehaviorMalformedXML sends a truncated descriptor body.
	BehaviorMalformedXML Behavior = "malformed-xml"
	// BehaviorMalformedAppURL sends a relative Application-URL.
	BehaviorMalformedAppURL Behavior = "malformed-app-url"
	// BehaviorNoFriendlyName serves a valid descriptor without friendlyName.
	BehaviorNoFriendlyName Behavior = "no-friendly-name"
)

var behaviors = []Behavior{
	BehaviorNormal,
	BehaviorMissingHeader,
	BehaviorNotFound,
	BehaviorMalformedXML,
	BehaviorMalformedAppURL,
	BehaviorNoFriendlyName,
}

func ParseBehavior(s string) (Behavior, error) {
	for _, b := range behaviors {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown behavior %q, expected one of %v", s, behaviors)
}

type specVersion struct {
	Major int `xml:"major"`
	Minor int `xml:"minor"`
}

type service struct {
	ServiceType string `xml:"serviceType"`
	ServiceID   string `xml:"serviceId"`
	ControlURL  string `xml:"controlURL"`
	EventSubURL string `xml:"eventSubURL"`
	SCPDURL     string `xml:"SCPDURL"`
}

type device struct {
	DeviceType   string    `xml:"deviceType"`
	FriendlyName string    `xml:"friendlyName,omitempty"`
	Manufacturer string    `xml:"manufacturer"`
	ModelName    string    `xml:"modelName"`
	UDN          string    `xml:"UDN"`
	Services     []service `xml:"serviceList>service"`
}

type deviceDescription struct {
	XMLName     xml.Name    `xml:"urn:schemas-upnp-org:device-1-0 root"`
	SpecVersion specVersion `xml:"specVersion"`
	Device      device      `xml:"device"`
}

// renderDescriptor produces the UPnP device description document served at
// the descriptor location.
func renderDescriptor(cfg *Config, withFriendlyName bool) ([]byte, error) {
	d := deviceDescription{
		SpecVersion: specVersion{Major: 1, Minor: 0},
		Device: device{
			DeviceType:   dialDeviceType,
			Manufacturer: cfg.Manufacturer,
			ModelName:    cfg.ModelName,
			UDN:          "uuid:" + cfg.UDN,
			Services: []service{{
				ServiceType: dialServiceType,
				ServiceID:   "urn:dial-multiscreen-org:serviceId:dial",
				ControlURL:  "/ssdp/notfound",
				EventSubURL: "/ssdp/notfound",
				SCPDURL:     "/ssdp/notfound",
			}},
		},
	}
	if withFriendlyName {
		d.Device.FriendlyName = cfg.FriendlyName
	}

	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
