package persona

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Placeholders used when an optional field is not configured. The chatbot
// keeps working in a degraded mode rather than refusing to start.
const (
	placeholderName     = "the site owner"
	placeholderSummary  = "Professional summary not available. Please set PERSONA_SUMMARY."
	placeholderProfile  = "Profile information not available. Please set PERSONA_PROFILE_TEXT."
	placeholderTemplate = "You are acting as {name}, answering questions about {name}'s career, background, and experience."
)

type Config struct {
	Name           string `split_words:"true"`
	Summary        string `split_words:"true"`
	ProfileText    string `split_words:"true"`
	PromptTemplate string `split_words:"true"`
}

// Persona holds the assistant's fixed identity. Immutable after New.
type Persona struct {
	name     string
	summary  string
	profile  string
	template string
}

func New(cfg Config) *Persona {
	p := &Persona{
		name:     strings.TrimSpace(cfg.Name),
		summary:  strings.TrimSpace(cfg.Summary),
		profile:  strings.TrimSpace(cfg.ProfileText),
		template: strings.TrimSpace(cfg.PromptTemplate),
	}

	if p.name == "" {
		log.Warn().Msg("persona name not set, using placeholder")
		p.name = placeholderName
	}
	if p.summary == "" {
		log.Warn().Msg("persona summary not set, using placeholder")
		p.summary = placeholderSummary
	}
	if p.profile == "" {
		log.Warn().Msg("persona profile text not set, using placeholder")
		p.profile = placeholderProfile
	}
	if p.template == "" {
		log.Warn().Msg("persona prompt template not set, using placeholder")
		p.template = placeholderTemplate
	}

	return p
}

func (p *Persona) Name() string {
	return p.name
}

// SystemPrompt renders the persona into the system turn: the template with
// {name} interpolated, the summary and profile sections, and a closing
// stay-in-character instruction.
func (p *Persona) SystemPrompt() string {
	var b strings.Builder
	b.WriteString(strings.ReplaceAll(p.template, "{name}", p.name))
	fmt.Fprintf(&b, "\n\n## Summary:\n%s\n\n## LinkedIn Profile:\n%s\n\n", p.summary, p.profile)
	fmt.Fprintf(&b, "With this context, please chat with the user, always staying in character as %s.", p.name)
	return b.String()
}
