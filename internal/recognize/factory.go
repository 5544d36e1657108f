package recognize

// NewFromSettings builds the provider chain for the configured engine.
// Tesseract gets one provider per script so Chinese recognition runs
// before the Latin fallback; the vision models handle both scripts in a
// single pass.
func NewFromSettings(engine string, languages []string, model, ollamaHost string) *Chain {
	switch engine {
	case "gemini":
		return NewChain(NewGemini(model))
	case "ollama":
		return NewChain(NewOllama(ollamaHost, model))
	default:
		if len(languages) == 0 {
			languages = []string{"chi_sim", "eng"}
		}
		providers := make([]Provider, 0, len(languages))
		for _, lang := range languages {
			providers = append(providers, NewTesseract(lang))
		}
		return NewChain(providers...)
	}
}
