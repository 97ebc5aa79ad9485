package request

import (
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

// Register holds the request body for broker registration.
type Register struct {
	Name        string  `json:"name"        validate:"min=2,max=255"          msg:"Name must be at least 2 characters" msg_max:"Name must be at most 255 characters"`
	Email       string  `json:"email"       validate:"required,email,max=255" msg:"Invalid email address"`
	Password    string  `json:"password"    validate:"min=8,maxbytes=72"      msg:"Password must be at least 8 characters" msg_maxbytes:"Password must be at most 72 bytes"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=255"      msg:"Company name must be at most 255 characters"`
}

func (r *Register) Normalize() {
	r.Email = util.NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

// Login holds the request body for broker login.
type Login struct {
	Email    string `json:"email"    validate:"required,email" msg:"Invalid email address"`
	Password string `json:"password" validate:"required"       msg:"Password is required"`
}

func (r *Login) Normalize() {
	r.Email = util.NormalizeEmail(r.Email)
}
