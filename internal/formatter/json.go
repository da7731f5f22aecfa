package formatter

import (
	"encoding/json"

	"github.com/truthlens/truthlens/internal/api"
)

// jsonFormatter emits the normalized response as indented JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) FormatAnalysis(result *api.AnalysisResponse) ([]byte, error) {
	// evidence payloads are large base64 blobs; report their presence only
	out := struct {
		*api.AnalysisResponse
		OriginalImage        string `json:"original_image,omitempty"`
		ELAImage             string `json:"ela_image,omitempty"`
		TamperAnnotatedImage string `json:"tamper_annotated_image,omitempty"`
		NoiseMapImage        string `json:"noise_map_image,omitempty"`
		Evidence             struct {
			Original         bool `json:"original"`
			ELAHeatmap       bool `json:"ela_heatmap"`
			TamperAnnotation bool `json:"tamper_annotation"`
			NoiseMap         bool `json:"noise_map"`
		} `json:"evidence"`
	}{AnalysisResponse: result}

	out.Evidence.Original = result.OriginalImage != ""
	out.Evidence.ELAHeatmap = result.ELAImage != ""
	out.Evidence.TamperAnnotation = result.TamperAnnotatedImage != ""
	out.Evidence.NoiseMap = result.NoiseMapImage != ""

	return json.MarshalIndent(out, "", "  ")
}

func (f *jsonFormatter) FormatVerification(result *api.TextVerificationResponse) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
