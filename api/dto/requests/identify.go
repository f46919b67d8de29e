// ABOUTME: Request DTOs for the species identifier endpoints
// ABOUTME: Provides validation and default values for incoming requests

package requests

// DefaultLanguage is the language used when a request omits one
const DefaultLanguage = "en"

// IdentifyRequest represents the request body for identifying a plant image
type IdentifyRequest struct {
	// ImageBase64 is the uploaded plant photo, base64-encoded
	ImageBase64 string `json:"image_base64" required:"true" minLength:"1" doc:"Base64-encoded plant image"`

	// Language selects the output language for medicinal uses
	Language string `json:"language,omitempty" enum:"en,hi,te,ta" default:"en" doc:"Output language code"`
}

// ApplyDefaults sets default values for optional fields
func (r *IdentifyRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}
