package notifications

// Webhook posts run reports as JSON to an HTTP endpoint.
type Webhook struct {
	URL      string
	Username string
	Password string
}

// RunReport is posted once per run, whatever the terminal state.
type RunReport struct {
	Service    string   `json:"service"`
	Workflow   string   `json:"workflow"`
	RunID      string   `json:"run_id"`
	Cluster    string   `json:"cluster"`
	VServer    string   `json:"vserver"`
	Volume     string   `json:"volume"`
	VolumeUUID string   `json:"volume_uuid,omitempty"`
	Outcome    string   `json:"outcome"`
	DryRun     bool     `json:"dry_run"`
	Anchor     string   `json:"relevant_snapshot,omitempty"`
	RestoreTo  string   `json:"restore_snapshot,omitempty"`
	Discarded  []string `json:"discarded_snapshots,omitempty"`
	Mismatches []string `json:"lineage_mismatches,omitempty"`
	Guarantee  string   `json:"guarantee,omitempty"`
	Message    string   `json:"message"`
}
