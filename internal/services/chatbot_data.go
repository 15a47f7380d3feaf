package services

import (
	"encoding/json"
	"os"
	"strings"
)

// CannedFallback is returned when a message has no canned answer.
const CannedFallback = "Bot tidak mengerti pertanyaan Anda."

// CannedResponses is the static question -> answer dataset, loaded once
// at startup. Lookups are case-insensitive and independent of both the
// quota gate and the Bedrock collaborator.
type CannedResponses struct {
	answers map[string]string
}

// LoadCannedResponses reads the dataset from a JSON file mapping
// questions to answers.
func LoadCannedResponses(path string) (*CannedResponses, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	answers := make(map[string]string, len(data))
	for question, answer := range data {
		answers[strings.ToLower(question)] = answer
	}
	return &CannedResponses{answers: answers}, nil
}

// Lookup returns the canned answer for a message, or CannedFallback.
func (c *CannedResponses) Lookup(message string) string {
	if answer, ok := c.answers[strings.ToLower(message)]; ok {
		return answer
	}
	return CannedFallback
}
