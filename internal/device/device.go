package device

import (
	"regexp"
	"strings"

	"github.com/mssola/useragent"
)

const (
	AppFacebook  = "Facebook"
	AppInstagram = "Instagram"
	AppWhatsApp  = "WhatsApp"
	AppBrowser   = "Browser"

	unknown = "Unknown"
)

type Device struct {
	Vendor        string `json:"vendor"`
	MarketingName string `json:"marketingName"`
	RawModel      string `json:"rawModel"`
	OS            string `json:"os"`
	Mobile        bool   `json:"mobile"`
}

type Fingerprint struct {
	Device    Device `json:"device"`
	Browser   string `json:"browser"`
	AppSource string `json:"appSource"`
	Summary   string `json:"summary"`
}

var androidModel = regexp.MustCompile(`Android[^;)]*;(?:\s*(?:wv|U|K|[a-z]{2}[-_][A-Za-z]{2})\s*;)*\s*([^;)]+?)(?:\s+Build/[^;)]*)?\s*[;)]`)

// Parse derives a best-effort device fingerprint from a User-Agent header.
// Unrecognized parts are reported as Unknown, never as an error.
func Parse(ua string) Fingerprint {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return Fingerprint{
			Device:    Device{Vendor: unknown, MarketingName: unknown, RawModel: unknown, OS: unknown},
			Browser:   unknown,
			AppSource: AppBrowser,
			Summary:   unknown,
		}
	}

	parsed := useragent.New(ua)
	raw := RawModel(ua)
	vendor, name := lookup(raw)

	d := Device{
		Vendor:        vendor,
		MarketingName: name,
		RawModel:      raw,
		OS:            orUnknown(parsed.OS()),
		Mobile:        parsed.Mobile(),
	}

	browser, version := parsed.Browser()
	if browser != "" && version != "" {
		if i := strings.IndexByte(version, '.'); i > 0 {
			version = version[:i]
		}
		browser += " " + version
	}

	fp := Fingerprint{
		Device:    d,
		Browser:   orUnknown(browser),
		AppSource: AppSource(ua),
	}
	fp.Summary = summary(fp)
	return fp
}

// AppSource reports the in-app browser a request came from. Facebook wins
// over Instagram because Instagram's webview also carries FB markers on some builds.
func AppSource(ua string) string {
	switch {
	case strings.Contains(ua, "FBAN"), strings.Contains(ua, "FBAV"), strings.Contains(ua, "FB_IAB"):
		return AppFacebook
	case strings.Contains(ua, "Instagram"):
		return AppInstagram
	case strings.Contains(ua, "WhatsApp"):
		return AppWhatsApp
	default:
		return AppBrowser
	}
}

// RawModel extracts the hardware model token from the User-Agent.
func RawModel(ua string) string {
	switch {
	case strings.Contains(ua, "iPhone"):
		return "iPhone"
	case strings.Contains(ua, "iPad"):
		return "iPad"
	case strings.Contains(ua, "Macintosh"):
		return "Mac"
	}
	if m := androidModel.FindStringSubmatch(ua); m != nil {
		model := strings.TrimSpace(m[1])
		if model != "" && model != "K" && model != "Mobile" && model != "Linux" {
			return model
		}
	}
	return unknown
}

func lookup(raw string) (vendor, name string) {
	if m, ok := models[strings.ToUpper(raw)]; ok {
		return m.vendor, m.name
	}
	upper := strings.ToUpper(raw)
	for _, p := range vendorPrefixes {
		if strings.HasPrefix(upper, p.prefix) {
			return p.vendor, raw
		}
	}
	return unknown, raw
}

func summary(fp Fingerprint) string {
	parts := make([]string, 0, 4)
	if fp.Device.MarketingName != unknown {
		name := fp.Device.MarketingName
		if fp.Device.Vendor != unknown && !strings.HasPrefix(name, fp.Device.Vendor) {
			name = fp.Device.Vendor + " " + name
		}
		parts = append(parts, name)
	}
	if fp.Device.OS != unknown {
		parts = append(parts, fp.Device.OS)
	}
	if fp.Browser != unknown {
		parts = append(parts, fp.Browser)
	}
	s := strings.Join(parts, ", ")
	if s == "" {
		s = unknown
	}
	if fp.AppSource != AppBrowser {
		s += " via " + fp.AppSource
	}
	return s
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}
