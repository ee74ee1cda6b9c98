package export

import "os"

// Branding is the institution identity rendered into document headers.
type Branding struct {
	Name         string
	AddressLines []string
	SupportEmail string
	SupportPhone string
	Website      string
}

// DefaultBranding returns the shipped institution identity.
func DefaultBranding() Branding {
	return Branding{
		Name: "NovaBank Digital",
		AddressLines: []string{
			"1 Harbourfront Avenue",
			"Singapore 098632",
		},
		SupportEmail: "support@novabank.example",
		SupportPhone: "+65 6100 0000",
		Website:      "www.novabank.example",
	}
}

// LogoSource supplies the institution logo image bytes (PNG). Implementations
// may read from disk or an object store; a failed load is never fatal to an
// export, which falls back to a text placeholder.
type LogoSource interface {
	Logo() ([]byte, error)
}

// FileLogoSource reads the logo from a path on every export.
type FileLogoSource struct {
	Path string
}

func (s FileLogoSource) Logo() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// StaticLogo serves fixed logo bytes.
type StaticLogo []byte

func (s StaticLogo) Logo() ([]byte, error) {
	return []byte(s), nil
}

// logoBytes resolves the logo, or nil when unavailable.
func (e *Engine) logoBytes() []byte {
	if e.logo == nil {
		return nil
	}
	data, err := e.logo.Logo()
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}

// placeholder is rendered in the logo position when no image is available.
func (b Branding) placeholder() string {
	return "[ " + b.Name + " ]"
}
