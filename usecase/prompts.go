package usecase

import domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"

const notesPrompt = `Take extensive and clear notes on this shiur in markdown format. Follow these rules strictly:

1. **LANGUAGE REQUIREMENT**: Write ALL explanatory content, descriptions, and notes in ENGLISH ONLY.
2. **HEBREW TERMS**: Write Hebrew terms, phrases, and quotations in Hebrew script only (do NOT translate or transliterate them into English).
3. NEVER use HTML tags - use ONLY markdown syntax (plain text with markdown formatting)
4. Use consistent markdown formatting:
   - Use ## for main section headers
   - Use ### for subsection headers
   - Use bullet points (-) for lists
   - Use **bold** for key terms and concepts
   - Use > for important quotes or principles
5. Organize the notes with clear sections
6. Be comprehensive and capture all important points
7. Return ONLY the formatted notes, no preamble or meta-commentary

**CRITICAL**: All notes must be in English except for Hebrew terms which must remain in Hebrew script.

If you cannot access or process the audio, respond with exactly: "ERROR: Unable to process audio file."`

const transcriptPrompt = `Generate a verbatim or near-verbatim transcript of this audio file.
Follow these rules strictly:
1. Identify speakers if possible (e.g., "Speaker:", "Audience:").
2. Write Hebrew terms in Hebrew script (do not translate or transliterate them).
3. Use paragraph breaks to indicate changes in topic or speaker.
4. Do not add any summary, analysis, or preamble. Just the transcript.
5. If the audio is unclear, mark it as [inaudible].

If you cannot access or process the audio, respond with exactly: "ERROR: Unable to process audio file."`

// PromptFor returns the instruction template for kind. Unknown kinds get the notes prompt.
func PromptFor(kind domainLecture.Kind) string {
	if kind == domainLecture.KindTranscript {
		return transcriptPrompt
	}
	return notesPrompt
}
