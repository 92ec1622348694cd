package ai

const analysisInstruction = `You will receive one piece of customer feedback: a star rating from 1 to 5 and a free-text review, each enclosed in tags below.
1. Write a short empathetic reply to the customer, at most 50 words, under the 'userResponse' key.
2. Summarize the review in exactly one sentence under the 'summary' key.
3. Propose exactly 3 concrete actions the business should take, as a list of strings under the 'recommendedActions' key.
4. Classify the overall sentiment as exactly one of Positive, Neutral or Negative under the 'sentiment' key.
Respond with a single JSON object containing only those four keys and no other text.
Example:
{
	"userResponse": "...",
	"summary": "...",
	"recommendedActions": ["...", "...", "..."],
	"sentiment": "Positive"
}

<rating>%d</rating>

<review>%s</review>`
