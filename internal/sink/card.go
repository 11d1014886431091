package sink

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	totalPlaceholder     = "<TOTAL_RECORDS>"
	partsPlaceholder     = "<PART_COUNT>"
	filesPlaceholder     = "<FILES>"
	stylePlaceholder     = "<STYLE>"
	targetPlaceholder    = "<TARGET>"
	coveragePlaceholder  = "<COVERAGE>"
	generatedPlaceholder = "<GENERATED_AT>"
	aspectsPlaceholder   = "<ASPECT_COUNT>"
)

const cardTemplate = `# Negative Hotel Reviews Dataset

## Overview
This dataset contains ` + totalPlaceholder + ` synthetic negative hotel reviews labelled with the hotel aspects they mention and the problem reported for each one.

## Dataset Characteristics
- **Total Reviews**: ` + totalPlaceholder + `
- **Format**: JSON
- **Language**: English
- **Phrase style**: ` + stylePlaceholder + `
- **Review Length**: Maximum 60 tokens per review
- **Balance**: every aspect is mentioned at least ` + targetPlaceholder + ` times

## Dataset Structure
Each review contains:

| Field | Type | Description |
| :--- | :--- | :--- |
| ` + "`review_id`" + ` | integer | Unique identifier, contiguous from 1 |
| ` + "`review_text`" + ` | string | The review text |
| ` + "`aspects`" + ` | array of string | Aspect words as they appear in the text |
| ` + "`problems`" + ` | array of string | The problem reported for each aspect, in the same order |

## Files
The dataset is split into ` + partsPlaceholder + ` parts:
` + filesPlaceholder + `
## Aspect Coverage

| Aspect | Mentions |
| :--- | ---: |
` + coveragePlaceholder + `
## Generated
Dataset generated on: ` + generatedPlaceholder + `
Total aspects covered: ` + aspectsPlaceholder + `
`

// RenderCard renders the README of a dataset.
func RenderCard(c Card) string {
	var files strings.Builder
	for _, p := range c.Parts {
		fmt.Fprintf(&files, "- `%s`\n", p)
	}

	var coverage strings.Builder
	for _, k := range c.Counts.Sorted() {
		fmt.Fprintf(&coverage, "| %s | %d |\n", k, c.Counts[k])
	}

	replacer := strings.NewReplacer(
		totalPlaceholder, groupThousands(c.TotalRecords),
		partsPlaceholder, strconv.Itoa(len(c.Parts)),
		filesPlaceholder, files.String(),
		stylePlaceholder, c.Style,
		targetPlaceholder, groupThousands(c.Target),
		coveragePlaceholder, coverage.String(),
		generatedPlaceholder, c.GeneratedAt.Format("2006-01-02 15:04:05"),
		aspectsPlaceholder, strconv.Itoa(len(c.Counts)),
	)
	return replacer.Replace(cardTemplate)
}

// groupThousands formats n with English digit grouping, e.g. 750,000.
func groupThousands(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
