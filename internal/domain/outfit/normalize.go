package outfit

import "strings"

// Normalize trims the raw fields and turns empty optional fields into nil.
// Numbers are not parsed here; the advisor validates them and reports
// field-level errors.
func Normalize(in RawInput) RecommendationRequest {
	return RecommendationRequest{
		Weather:     strings.TrimSpace(in.Weather),
		Temperature: optional(in.Temperature),
		WindSpeed:   optional(in.WindSpeed),
	}
}

// Raw converts a request back into form values; nil becomes "".
func (r RecommendationRequest) Raw() RawInput {
	return RawInput{
		Weather:     r.Weather,
		Temperature: deref(r.Temperature),
		WindSpeed:   deref(r.WindSpeed),
	}
}

// Trimmed returns the input with every field trimmed.
func (in RawInput) Trimmed() RawInput {
	return RawInput{
		Weather:     strings.TrimSpace(in.Weather),
		Temperature: strings.TrimSpace(in.Temperature),
		WindSpeed:   strings.TrimSpace(in.WindSpeed),
	}
}

func optional(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
