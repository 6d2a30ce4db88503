package api

import "github.com/JaimeStill/pdfdesk/internal/pdfops"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	PDF pdfops.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		PDF: pdfops.New(runtime.Logger),
	}
}
