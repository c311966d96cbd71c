// Package storyteller builds the prompts sent to the text-generation model
// and validates the structured output coming back.
package storyteller

import (
	"fmt"
	"strings"
)

// ChildDescriptor the child a story is generated for
type ChildDescriptor struct {
	Name      string
	Age       int
	Interests string
}

// Idea one selected story idea
type Idea struct {
	ID          string
	Title       string
	Description string
}

// SampleScript fixed narration used when provisioning a voice preset, so
// every preset sample sounds comparable.
const SampleScript = "Once upon a time, in a magical forest, there lived a group of friendly animals. " +
	"They all worked together to protect their home and had wonderful adventures every day."

// FallbackVoiceDescription is the safety-net voice used when a story carries
// neither a preset nor a description. Creation invariants should make this
// unreachable.
const FallbackVoiceDescription = "A gentle, engaging storyteller perfect for children's bedtime stories"

// BuildIdeasPrompt builds the prompt for story-idea generation.
// existingTitles are titles already used by this user; the model is told to
// avoid them.
func BuildIdeasPrompt(child ChildDescriptor, existingTitles []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate 5 bedtime story ideas for %s, who is %d years old and interested in %s.",
		child.Name, child.Age, child.Interests)
	sb.WriteString(" Each story idea should be child-appropriate, engaging, and suitable for bedtime reading.")
	sb.WriteString(" Each idea should have a title of no more than 10 words and a 1-2 sentence description" +
		" that previews the story's plot, so parents understand what the story is about.")

	if len(existingTitles) > 0 {
		fmt.Fprintf(&sb, "\n\nHere are some story titles that are already taken, you should avoid using them: %s",
			strings.Join(existingTitles, ", "))
	}

	sb.WriteString("\n\nRespond with JSON only, no surrounding text, in this exact shape:\n")
	sb.WriteString(`{"stories":[{"id":"1","title":"...","description":"..."}]}`)
	sb.WriteString("\nThe stories array must contain exactly 5 entries with unique ids.")

	return sb.String()
}

// BuildStoryPrompt builds the long-form narrative prompt for a chosen idea
func BuildStoryPrompt(idea Idea, child ChildDescriptor) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Write a bedtime story titled %q based on this description: %s. ",
		idea.Title, idea.Description)
	fmt.Fprintf(&sb, "This story is for %s who is %d years old and likes %s.",
		child.Name, child.Age, child.Interests)

	sb.WriteString(`

The story should:
- Be appropriate for a child's bedtime reading
- Be around 800-1000 words.
- Very strict: No more than 5000 characters! Make it shorter if needed!
- Have a clear beginning, middle, and end
- Include a positive message or moral
- Use age-appropriate language and concepts
- Encourage imagination and wonder
- End with a calm, peaceful conclusion suitable for bedtime

Format the story with proper paragraphs and include a couple of sentences of dialogue where appropriate. Make it engaging, but calming - perfect for bedtime.`)

	return sb.String()
}
