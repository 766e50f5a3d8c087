// Package personapi is the client for the person/risk service.
package personapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"caseflow/internal/upstream"
)

// RiskSummary is the person's current risk profile.
type RiskSummary struct {
	CRN              string `json:"crn"`
	OverallRisk      string `json:"overallRisk"`
	RiskToChildren   string `json:"riskToChildren"`
	RiskToPublic     string `json:"riskToPublic"`
	RiskToKnownAdult string `json:"riskToKnownAdult"`
	LastUpdated      string `json:"lastUpdated"`
}

// SectionAnswer is one labelled answer inside an assessment section.
type SectionAnswer struct {
	QuestionNumber string `json:"questionNumber"`
	Label          string `json:"label"`
	Answer         string `json:"answer"`
}

// AssessmentSection is one section of the structured offender assessment.
type AssessmentSection struct {
	Name    string          `json:"name"`
	Answers []SectionAnswer `json:"answers"`
}

// Alert is an active alert recorded against the person.
type Alert struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	DateCreated string `json:"dateCreated"`
}

// Client calls the person/risk service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client for the service at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetRiskSummary fetches the person's risk summary.
func (c *Client) GetRiskSummary(ctx context.Context, crn string) (RiskSummary, error) {
	var out RiskSummary
	err := upstream.Do(ctx, c.http, http.MethodGet,
		fmt.Sprintf("%s/people/%s/risks/summary", c.baseURL, url.PathEscape(crn)), nil, &out)
	return out, err
}

// GetAssessmentSection fetches one named section of the structured
// assessment, optionally filtered to a subset of subsections.
func (c *Client) GetAssessmentSection(ctx context.Context, crn, sectionName string, subsections ...string) (AssessmentSection, error) {
	u := fmt.Sprintf("%s/people/%s/assessment/sections/%s",
		c.baseURL, url.PathEscape(crn), url.PathEscape(sectionName))
	if len(subsections) > 0 {
		q := url.Values{}
		for _, s := range subsections {
			q.Add("subsection", s)
		}
		u += "?" + q.Encode()
	}
	var out AssessmentSection
	err := upstream.Do(ctx, c.http, http.MethodGet, u, nil, &out)
	return out, err
}

// GetAlerts fetches the person's active alerts.
func (c *Client) GetAlerts(ctx context.Context, crn string) ([]Alert, error) {
	var out []Alert
	err := upstream.Do(ctx, c.http, http.MethodGet,
		fmt.Sprintf("%s/people/%s/alerts", c.baseURL, url.PathEscape(crn)), nil, &out)
	return out, err
}

// StubRiskSummary is the degraded-data fallback rendered when the risk
// service had no data or failed.
func StubRiskSummary(crn string) RiskSummary {
	return RiskSummary{CRN: crn, OverallRisk: "Unknown", RiskToChildren: "Unknown",
		RiskToPublic: "Unknown", RiskToKnownAdult: "Unknown"}
}

// StubAssessmentSection is the degraded-data fallback for a section fetch.
func StubAssessmentSection(name string) AssessmentSection {
	return AssessmentSection{Name: name}
}
