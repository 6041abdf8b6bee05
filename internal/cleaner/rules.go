package cleaner

import "regexp"

// boilerplatePatterns identify administrative and legal text that carries
// no sentiment-bearing financial content. Every match is removed
// outright. Ordered; matching is case-insensitive and may span newlines.
var boilerplatePatterns = compileAll(`(?is)`, []string{
	// Legal disclaimers.
	`Pursuant to the requirements of.*?Exchange Act`,
	`Securities Exchange Act of 1934`,
	`17 CFR \d+\.\d+`,
	`Rule \d+`,
	`Section \d+`,
	`Regulation \w+`,
	`§\d+\.\d+`,

	// Form headers and administrative matter.
	`UNITED STATES\s*SECURITIES AND EXCHANGE COMMISSION`,
	`FORM \d+-[KQ]`,
	`ANNUAL REPORT PURSUANT TO`,
	`QUARTERLY REPORT PURSUANT TO`,
	`CURRENT REPORT`,
	`Commission file number:`,
	`State or other jurisdiction`,
	`IRS Employer.*?Identification No`,
	`Address of principal executive offices`,
	`Registrant's telephone number`,
	`Securities registered pursuant to`,
	`Trading Symbol\(s\)`,
	`Name of each exchange`,
	`Indicate by check mark`,
	`Yes ☐ No ☐`,
	`☐`,
	`Emerging Growth Company`,
	`Large accelerated filer`,
	`Accelerated filer`,
	`Non-accelerated filer`,
	`SIGNATURE`,
	`Pursuant to the requirements`,
	`duly caused this report to be signed`,
	`By: /s/`,

	// Table of contents markers.
	`Table of Contents`,
	`Item \d+\.`,
	`Part [IVX]+`,

	// Forward-looking disclaimers.
	`Forward-Looking Statements`,
	`may cause our actual results.*?to be materially different`,
	`you should not place undue reliance`,
	`Except as required by law`,

	// Incorporation by reference.
	`incorporated by reference`,
	`incorporated herein by reference`,
	`DOCUMENTS INCORPORATED BY REFERENCE`,

	// Website and social media references.
	`https?://[^\s]+`,
	`investor relations website`,
	`social media channels`,

	// Copyright and legal notices.
	`© \d+.*?All rights reserved`,
	`All references to.*?mean.*?and its subsidiaries`,
})

// sentimentSectionPatterns mark sub-headings whose following span likely
// carries sentiment. Used only by the optional pre-extraction stage; a
// smaller vocabulary than the segmenter's heading rules.
var sentimentSectionPatterns = compileAll(`(?i)`, []string{
	`Item \d+\.\d+.*?Results of Operations`,
	`Management's Discussion and Analysis`,
	`MD&A`,
	`Results of Operations`,
	`Financial Condition`,
	`Press Release`,
	`CFO Commentary`,
	`Executive Summary`,
	`Business Overview`,
	`Highlights`,
	`Financial Highlights`,
	`Quarterly Results`,
	`Annual Results`,
})

// neutralPhrases flag sentences as boilerplate unless financial terms
// co-occur. Checked against lowercased sentences.
var neutralPhrases = []string{
	"not applicable",
	"none",
	"n/a",
	"see above",
	"see below",
	"incorporated by reference",
	"furnished and shall not be deemed",
	"shall not be incorporated by reference",
	"subject to the liabilities",
}

// financialContentRe spots financial or business vocabulary. Boilerplate
// without it is noise; boilerplate with it may carry signal.
var financialContentRe = regexp.MustCompile(`(?i)\b(revenue|earnings|profit|loss|growth|decline|increase|decrease|margin|EPS|guidance|sales|income|expense|cash|debt|equity|assets|liabilities|operating|net|gross|business|company|quarter|year|period|results|performance|financial|market|customer|product|service|demand|supply|pricing|cost|risk|challenge|opportunity|strategy|competitive|market share|acquisition|partnership|investment|capital)\b`)

// financialKeywordRe is the tighter vocabulary used by the
// short-paragraph filter.
var financialKeywordRe = regexp.MustCompile(`(?i)\b(revenue|earnings|profit|loss|growth|decline|increase|decrease|margin|EPS|guidance)\b`)

var (
	sentenceSplitRe   = regexp.MustCompile(`[.!?]\s+`)
	punctuationRe     = regexp.MustCompile(`[^\w\s]`)
	citationRe        = regexp.MustCompile(`\d+\s+CFR|\d+\.\d+\)|Rule\s+\d+|Section\s+\d+`)
	digitGroupRe      = regexp.MustCompile(`\d+`)
	crossReferenceRe  = regexp.MustCompile(`^refer to|^see |^see item|^see part |^see note \d+`)
	structuralLabelRe = regexp.MustCompile(`^(table|figure|exhibit|note|item)\s+\d+`)
	topLevelItemRe    = regexp.MustCompile(`^Item \d+\.`)
	whitespaceRunRe   = regexp.MustCompile(`\s+`)
	newlineRunRe      = regexp.MustCompile(`\n{3,}`)
	punctuationLineRe = regexp.MustCompile(`(?m)^[^\w\s]+$`)
	paragraphBreakRe  = regexp.MustCompile(`\n\n`)
)

func compileAll(flags string, patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(flags + p)
	}
	return res
}
