package domain

// OtherRequestTypeName is the catch-all catalog entry, created on first use.
const OtherRequestTypeName = "Other"

// RequestType is a named category of recommendation request.
type RequestType struct {
	ID   int64
	Name string
}
