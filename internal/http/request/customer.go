package request

import (
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

// MsgInvalidCustomerType is the message for an unknown customer type.
const MsgInvalidCustomerType = "Type must be exporter or importer"

// CreateCustomer holds the request body for creating a customer. Any status
// sent by the client is ignored.
type CreateCustomer struct {
	Name  string `json:"name"  validate:"min=2,max=255"                    msg:"Name must be at least 2 characters" msg_max:"Name must be at most 255 characters"`
	Email string `json:"email" validate:"required,email,max=255"           msg:"Invalid email address"`
	GSTIN string `json:"gstin" validate:"gstin"                            msg:"Invalid GSTIN format"`
	Type  string `json:"type"  validate:"customertype"                     msg:"Type must be exporter or importer"`
}

func (r *CreateCustomer) Normalize() {
	r.Email = util.NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

// UpdateCustomerStatus holds the request body for a status change. The value
// is checked against the status enum by the handler.
type UpdateCustomerStatus struct {
	Status string `json:"status"`
}
