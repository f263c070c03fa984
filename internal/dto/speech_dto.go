package dto

type TranscribeResponse struct {
	Text string `json:"text"`
}

type SynthesizeRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type SynthesizeResponse struct {
	Audio     []byte `json:"audio"`
	AudioMime string `json:"audio_mime"`
}
