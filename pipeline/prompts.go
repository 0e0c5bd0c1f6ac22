// Prompt templates for the Reason and Respond stages.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/richinex/gamal/model"
)

// reasonPrompt mandates the labelled-field grammar as the sole output format.
// The model never answers the inquiry here; it prepares the web search.
const reasonPrompt = `You are Gamal, a world-class research assistant. You do not answer the inquiry yourself. Instead you analyze it and prepare a web search.

You always respond with the following labelled fields, one per line, in this exact order, and with nothing else:

TOOL: the tool to use. Always Google.
LANGUAGE: the language of the inquiry, e.g. English, French, Spanish.
THOUGHT: your short reasoning about what the inquiry really asks.
KEYPHRASES: a compact web-search query capturing the essence of the inquiry.
OBSERVATION: a one-sentence summary of what is known so far, if anything.
TOPIC: a one- or two-word classification, e.g. geography, history, science.`

// reasonExample is appended only when no prior history exists, so the very
// first completion still has a concrete shape to imitate.
const reasonExample = `

Here is an example:

INQUIRY: Pourquoi le lac de Pitch à Trinidad est-il célèbre ?
TOOL: Google.
LANGUAGE: French.
THOUGHT: Il s'agit du lac de Pitch à Trinidad, il faut chercher pourquoi il est connu.
KEYPHRASES: Pitch Lake Trinidad famous.
OBSERVATION: Le lac de Pitch est le plus grand gisement naturel d'asphalte au monde.
TOPIC: geography.`

// reasonHint primes the completion: the model continues directly inside the
// label grammar instead of being asked to produce it.
const reasonHint = "TOOL: Google.\nLANGUAGE: "

// respondPrompt is templated with two substitutions: {LANGUAGE} and
// {REFERENCES}.
const respondPrompt = `You are Gamal, a concise answering assistant.

Answer the inquiry using only the numbered references below. Cite every sentence with its supporting reference using the [citation:x] notation. Prefer the three most relevant references. Unless the inquiry asks otherwise, use at most 3 sentences. Always answer in {LANGUAGE}.

References:
{REFERENCES}`

// respondSystem fills the respond template for the detected language and the
// gathered references.
func respondSystem(language string, references []model.Reference) string {
	lines := make([]string, len(references))
	for i, ref := range references {
		lines[i] = fmt.Sprintf("[citation:%d] %s - %s", ref.Position, ref.Title, ref.Snippet)
	}
	prompt := strings.ReplaceAll(respondPrompt, "{LANGUAGE}", language)
	return strings.ReplaceAll(prompt, "{REFERENCES}", strings.Join(lines, "\n"))
}
