package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion string          `json:"appVersion"`
	DbVersion  string          `json:"dbVersion"`
	DbDriver   string          `json:"dbDriver"`
	Features   map[string]bool `json:"features"`
}

// SelfCheckStatus is the state shown by the status indicator.
type SelfCheckStatus string

const (
	SelfCheckNominal SelfCheckStatus = "NOMINAL"
	SelfCheckFailure SelfCheckStatus = "FAILURE"
)

// SelfCheckResult is the outcome of replaying the fixed golden ledger.
type SelfCheckResult struct {
	Passed  bool            `json:"passed"`
	Status  SelfCheckStatus `json:"status"`
	Details string          `json:"details"`
	Units   float64         `json:"units"`
	Value   float64         `json:"value"`
	AvgCost float64         `json:"avgCost"`
}
