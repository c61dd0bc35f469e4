package pi

import (
	"errors"
	"fmt"

	"github.com/stellar/go/strkey"
)

// Payment directions as reported by the API.
const (
	DirectionUserToApp = "user_to_app"
	DirectionAppToUser = "app_to_user"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
	UserCancelled       bool `json:"user_cancelled"`
}

// PaymentTransaction is the blockchain transaction backing a payment.
type PaymentTransaction struct {
	TxID     string `json:"txid"`
	Verified bool   `json:"verified"`
	Link     string `json:"_link"`
}

// PaymentDTO is a payment record as returned by the Pi Network API.
type PaymentDTO struct {
	Identifier  string              `json:"identifier"`
	UserUID     string              `json:"user_uid"`
	Amount      float64             `json:"amount"`
	Memo        string              `json:"memo"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
	FromAddress string              `json:"from_address"`
	ToAddress   string              `json:"to_address"`
	Direction   string              `json:"direction"`
	CreatedAt   string              `json:"created_at"`
	Network     string              `json:"network"`
	Status      PaymentStatus       `json:"status"`
	Transaction *PaymentTransaction `json:"transaction,omitempty"`
}

// Completed reports whether the developer has completed the payment.
func (p *PaymentDTO) Completed() bool {
	return p.Status.DeveloperCompleted
}

// ValidateAddresses checks that any populated from/to address is a valid
// Stellar account ID. Empty addresses are allowed: the API leaves them blank
// until the transaction is created.
func (p *PaymentDTO) ValidateAddresses() error {
	var errs []error

	for _, addr := range []struct {
		field string
		value string
	}{
		{"from_address", p.FromAddress},
		{"to_address", p.ToAddress},
	} {
		if addr.value == "" {
			continue
		}
		if !strkey.IsValidEd25519PublicKey(addr.value) {
			errs = append(errs, NewStellarError(fmt.Sprintf("payment %s has invalid %s %q", p.Identifier, addr.field, addr.value)))
		}
	}

	return errors.Join(errs...)
}
