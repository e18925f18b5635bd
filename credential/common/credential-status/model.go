package credentialstatus

// Status is a credentialStatus entry of the BitstringStatusListEntry kind.
type Status struct {
	ID                   string `json:"id,omitempty"`
	Type                 string `json:"type"`
	StatusPurpose        string `json:"statusPurpose,omitempty"`
	StatusListIndex      string `json:"statusListIndex,omitempty"`
	StatusListCredential string `json:"statusListCredential,omitempty"`
}

// StatusListCredentialResponse is the envelope some status services wrap the
// status list credential in.
type StatusListCredentialResponse struct {
	Data *StatusListCredential `json:"data"`
}

// StatusListCredential is the credential published at a statusListCredential
// URL. Only the members needed for the status check are typed.
type StatusListCredential struct {
	ID                string                      `json:"id"`
	Issuer            interface{}                 `json:"issuer"`
	Type              interface{}                 `json:"type"`
	CredentialSubject StatusListCredentialSubject `json:"credentialSubject"`
}

// StatusListCredentialSubject carries the encoded bitstring.
type StatusListCredentialSubject struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	StatusPurpose string `json:"statusPurpose"`
	EncodedList   string `json:"encodedList"`
}
