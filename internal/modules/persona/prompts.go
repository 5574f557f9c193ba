package persona

import (
	"fmt"
	"strings"

	"github.com/basedcaster/core/internal/modules/tweets"
)

const analysisPromptTemplate = `You are analyzing a Twitter user's recent tweets.
Return a compact JSON object with these exact keys:
{
  "score": number in [0,1000],        // how "based" (Base chain + Farcaster + onchain culture)
  "personality": string,              // short, 1-2 words (e.g., "Builder", "Shitposter", "Educator")
  "emoji": string,                    // a single emoji matching personality
  "basedDescription": string          // 1 short sentence that explains how based this user is based on their tweets
}

Guidelines:
- Heavily reward mentions of Base, Farcaster, Warpcast, frames, onchain culture.
- Penalize if irrelevant to crypto/onchain culture.
- Keep personality concise and avoid punctuation.
- Make basedDescription neutral, punchy, and under 120 characters.

Username: @%s
Tweets (newest first):
%s
Only output the JSON.`

const posterPromptTemplate = `You are a crypto-native designer generating an NFT-style SVG poster. Output a compact JSON with one key "svg" whose value is a single-line SVG string. No markdown, no explanations.

Vibe (NFT/crypto poster):
- Loud, kinetic, futuristic; meant to attract crypto users
- Neon gradient palette (electric indigo, cyan, magenta, acid green) on a dark indigo/black backdrop
- Holographic sheen using layered gradients, geometric shards, glitch lines, particle bursts
- Personality-driven abstract motif matching "%[2]s" (e.g., builder → circuitry shapes; educator → grid/lines; shitposter → graffiti strokes)
- Use the emoji %[3]s as a small accent glyph, not the main subject

Constraints:
- Square canvas 1024x1024
- Use only inline SVG (no external images). Avoid heavy filters; prefer gradients, masks, patterns, and simple blurs sparingly
- Use generic fonts (system-ui, sans-serif)
- Prominently show:
  @%[1]s
  %[2]s • Based Score: %[4]d/1000
- Composition should feel bold and collectible (poster-esque)

Return exactly:
{"svg":"<svg ...>...</svg>"}`

const listInstruction = `Return strictly valid JSON with this shape: {"items":[{"title":"string","subtitle":"string(optional)","reason":"string(optional)"}]}`

var ideaPromptTemplates = map[Category]string{
	CategoryMemecoins: `You are recommending degen, crypto-native meme coins for a user whose personality is "%s".
Make them fun, spicy, and on-chain culture aligned. Include both known and imaginative coin ideas.
For each item provide a catchy title (e.g., TICKER or name) and a one-line reason why it matches this personality.`,
	CategoryNFTs: `Suggest NFT collections (real or imaginative) tailored to a crypto user's personality "%s".
Mix blue-chip vibes with degen energy. For each item, provide a title and a one-line reason aligned with onchain culture.`,
	CategoryPlaylist: `Create a crypto-native playlist themed for personality "%s".
Focus on high-energy, futuristic, degen-friendly tracks. Include title and optional artist in subtitle. Keep it hype for builders/traders.`,
}

func buildAnalysisPrompt(username string, list []tweets.Tweet) string {
	lines := make([]string, len(list))
	for i, t := range list {
		lines[i] = fmt.Sprintf("(%d) %s", i+1, t.Text)
	}
	return fmt.Sprintf(analysisPromptTemplate, username, strings.Join(lines, "\n"))
}

func buildPosterPrompt(req PosterRequest) string {
	return fmt.Sprintf(posterPromptTemplate, req.Username, req.Personality, req.Emoji, req.Score)
}

func buildListPrompt(body string) string {
	return body + "\n" + listInstruction
}

func buildIdeaPrompt(category Category, personality string) (string, bool) {
	tmpl, ok := ideaPromptTemplates[category]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, personality), true
}
