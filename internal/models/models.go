package models

// TariffRow is one line of the tariff schedule, typed at load time.
// Rate is the ad-valorem fraction produced by the rate parser; RateText
// keeps the raw column value for display and auditing.
type TariffRow struct {
	HTSNumber   string
	Description string
	RateText    string
	Rate        float64
}

// DutyResult holds the two derived currency values of a landed-cost
// calculation, both rounded to cents.
type DutyResult struct {
	DutyCost        float64
	TotalLandedCost float64
}

// Document is a keyword-searchable text record in the document store.
type Document struct {
	ID      int64
	Content string
}

// Passage is a chunk of the ingested corpus held by a semantic index.
type Passage struct {
	ID      int
	Source  string
	Content string
}

// SearchResult pairs a passage with its similarity score.
type SearchResult struct {
	Passage Passage
	Score   float64
}

// QueryEntry is one remembered question/answer pair of the retrieval flow.
// The json keys reproduce the memory file format of earlier releases.
type QueryEntry struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// DutyEntry is one remembered calculation of the duty flow.
type DutyEntry struct {
	HTSCode         string  `json:"HTS Code"`
	ProductCost     float64 `json:"Product Cost"`
	Freight         float64 `json:"Freight"`
	Insurance       float64 `json:"Insurance"`
	DutyCost        float64 `json:"Duty Cost"`
	TotalLandedCost float64 `json:"Total Landed Cost"`
}
