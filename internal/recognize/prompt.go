package recognize

// visionPrompt instructs an LLM-vision model to behave like an OCR engine
// on a book cover. Output shape matters more than prose quality here: the
// field extractor works line by line, so the model must keep line breaks
// and transcribe without commentary.
const visionPrompt = `You are performing OCR on a photo of a printed book cover (front or back).

Extract ALL visible text exactly as it appears, preserving:
- Line breaks between separate text elements
- Capitalization and punctuation
- The top-to-bottom order of text on the cover

Do not translate, interpret, or summarize. Do not add phrases like
"Here is the text:". If a fragment is illegible, write [?].

Start immediately with the transcribed text.`
