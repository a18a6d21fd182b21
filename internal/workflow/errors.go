package workflow

import "errors"

// Terminal states of the restore and guarantee workflows.
// Every one of them ends the run with a non-zero exit code.
var (
	ErrIneligibleVolume   = errors.New("volume type is not read-write")
	ErrNoRelevantSnapshot = errors.New("no relevant snapshot found")
	ErrAlreadyOptimal     = errors.New("relevant snapshot is the newest snapshot, nothing to optimize")
	ErrUnconfirmedLineage = errors.New("relevant snapshot not confirmed on source volume")
	ErrOperatorDeclined   = errors.New("restore cancelled by operator")
	ErrRestoreRejected    = errors.New("restore rejected by cluster")

	ErrGuaranteeUpdate     = errors.New("setting volume guarantee failed")
	ErrGuaranteeNotApplied = errors.New("volume guarantee not applied")
	ErrInvalidGuarantee    = errors.New("invalid guarantee, must be 'volume' or 'none'")

	ErrSourceNotConfigured = errors.New("source cluster, vserver and volume are required unless source validation is skipped")
)
