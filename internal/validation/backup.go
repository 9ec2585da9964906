package validation

import (
	"errors"
	"fmt"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// ValidateBackup checks every record of a bundle before it replaces the
// ledger. Field keys are prefixed with the record position, e.g.
// "transactions[3].quantity". Duplicate IDs and transactions
// pointing at an asset missing from the bundle are reported too.
func ValidateBackup(b model.Backup) error {
	fields := make(map[string]string)

	assetIDs := make(map[string]bool, len(b.Assets))
	for i, a := range b.Assets {
		prefix := fmt.Sprintf("assets[%d]", i)
		merge(fields, prefix, ValidateAsset(a))

		if assetIDs[a.ID] {
			fields[prefix+".id"] = fmt.Sprintf("duplicate asset ID %q", a.ID)
		}
		assetIDs[a.ID] = true
	}

	txIDs := make(map[string]bool, len(b.Transactions))
	for i, tx := range b.Transactions {
		prefix := fmt.Sprintf("transactions[%d]", i)
		merge(fields, prefix, ValidateTransaction(tx))

		if txIDs[tx.ID] {
			fields[prefix+".id"] = fmt.Sprintf("duplicate transaction ID %q", tx.ID)
		}
		txIDs[tx.ID] = true

		if _, bad := fields[prefix+".assetId"]; !bad && !assetIDs[tx.AssetID] {
			fields[prefix+".assetId"] = fmt.Sprintf("unknown asset %q", tx.AssetID)
		}
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

func merge(dst map[string]string, prefix string, err error) {
	var verr *Error
	if !errors.As(err, &verr) {
		return
	}
	for field, msg := range verr.Fields {
		dst[prefix+"."+field] = msg
	}
}
