package stampgen

import (
	"fmt"
	"strings"
)

// DefaultCharacterDescription is used when no reference image is given
// and the vision step cannot supply a better description.
const DefaultCharacterDescription = "A cute mascot character."

// DefaultStylePrompt is the house sticker style.
const DefaultStylePrompt = "Anime style, cute, expressive"

// DescribeInstruction is the prompt sent alongside a reference image to
// obtain a reusable character description.
const DescribeInstruction = "Describe this character in detail, focusing on physical appearance " +
	"(hair, eyes, clothes, colors), art style, and key features so that an artist can draw it " +
	"exactly the same. Keep it concise but descriptive."

// BuildStickerPrompt composes the generation prompt for one stamp from
// the character description, the stamp's caption text, and a style hint.
// Text and style may be empty; their sections are omitted.
func BuildStickerPrompt(description, text, style string) string {
	if description == "" {
		description = DefaultCharacterDescription
	}

	var b strings.Builder
	b.WriteString("Create a sticker/stamp illustration of a character.\n\n")
	fmt.Fprintf(&b, "Character Description:\n%s\n", description)

	if text != "" {
		fmt.Fprintf(&b, "\nAction/Pose/Emotion based on this text: %q\n", text)
	}

	b.WriteString("\nStyle:\n")
	if style != "" {
		b.WriteString(style)
		b.WriteString("\n")
	}
	b.WriteString("Vector art, clean lines, white background, suitable for a sticker.")

	return b.String()
}
