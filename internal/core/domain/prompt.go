package domain

// RatingPrompt is the instruction sent alongside every book image.
const RatingPrompt = `Analyze the book in the provided image and rate its second-hand value on a scale of 1 to 10.

Consider factors such as:
- Condition (new, slightly used, heavily used, torn, or damaged)
- Presence of torn pages or missing covers
- Genre and Language
- Estimated second-hand price in the market

Output only a single number (1-10). No text, no explanation, just the number.`
